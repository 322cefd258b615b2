// Package fonts 提供内置字体数据（Go 字体家族），用于文本测量与 PDF 输出。
package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Style 对应一个字体文件的字重/斜体组合。
type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

var sans = map[Style][]byte{
	Regular:    goregular.TTF,
	Bold:       gobold.TTF,
	Italic:     goitalic.TTF,
	BoldItalic: gobolditalic.TTF,
}

var mono = map[Style][]byte{
	Regular:    gomono.TTF,
	Bold:       gomonobold.TTF,
	Italic:     gomono.TTF,
	BoldItalic: gomonobold.TTF,
}

// Family 将 CSS 字体族名映射到内置字体族：等宽族返回 "mono"，其余一律为 "sans"。
func Family(name string) string {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(name), `'"`)) {
	case "monospace", "mono", "go mono", "courier", "courier new", "menlo", "consolas":
		return "mono"
	}
	return "sans"
}

// Load 返回内置字体的字节数据，name 可写为 "embed:sans" 或直接 "mono"。
func Load(name string, style Style) ([]byte, error) {
	name = strings.TrimPrefix(name, "embed:")
	var table map[Style][]byte
	switch name {
	case "sans", "":
		table = sans
	case "mono":
		table = mono
	default:
		return nil, fmt.Errorf("找不到内置字体 %s", name)
	}
	data, ok := table[style]
	if !ok {
		return nil, fmt.Errorf("内置字体 %s 不支持样式 %d", name, style)
	}
	return data, nil
}
