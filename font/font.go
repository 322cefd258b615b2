// Package font describes label fonts: the resolved descriptor used for text
// measurement, its CSS string form, and resolution from option nodes.
package font

import (
	"strconv"
	"strings"

	"github.com/ByLCY/chartcfg/options"
)

const (
	defaultSize       = 12.0
	defaultLineHeight = 1.2
	defaultFamily     = "sans-serif"
)

// Font is a resolved font descriptor. Size and LineHeight are in pixels.
type Font struct {
	Family     string  `json:"family"`
	Size       float64 `json:"size"`
	Style      string  `json:"style,omitempty"`
	Weight     string  `json:"weight,omitempty"`
	LineHeight float64 `json:"lineHeight"`
}

// String returns the CSS font string ("bold 12px Arial"). It is the key of
// the text width cache.
func (f Font) String() string {
	var b strings.Builder
	if f.Style != "" {
		b.WriteString(f.Style)
		b.WriteByte(' ')
	}
	if f.Weight != "" {
		b.WriteString(f.Weight)
		b.WriteByte(' ')
	}
	b.WriteString(strconv.FormatFloat(f.Size, 'f', -1, 64))
	b.WriteString("px ")
	b.WriteString(f.Family)
	return b.String()
}

// Primary returns the first family name without quotes.
func (f Font) Primary() string {
	first := strings.TrimSpace(strings.SplitN(f.Family, ",", 2)[0])
	return strings.Trim(first, `'"`)
}

// Bold reports whether the weight asks for a bold face.
func (f Font) Bold() bool {
	switch f.Weight {
	case "bold", "bolder":
		return true
	}
	if n, err := strconv.Atoi(f.Weight); err == nil {
		return n >= 600
	}
	return false
}

// Italic reports whether the style asks for a slanted face.
func (f Font) Italic() bool {
	return f.Style == "italic" || f.Style == "oblique"
}

// Resolve builds a Font from a font option node, falling back key by key
// on fallback (usually the global font defaults). Either node may be nil.
func Resolve(n, fallback *options.Node) Font {
	get := func(key string) any {
		if v, ok := n.Get(key); ok && v != nil {
			return v
		}
		return fallback.Value(key)
	}

	size, ok := toSize(get("size"))
	if !ok {
		size = defaultSize
	}
	f := Font{
		Family: defaultFamily,
		Size:   size,
	}
	if s, ok := get("family").(string); ok && s != "" {
		f.Family = s
	}
	if s, ok := get("style").(string); ok {
		f.Style = s
	}
	switch w := get("weight").(type) {
	case string:
		f.Weight = w
	case nil:
	default:
		if num, ok := options.ToFloat(w); ok {
			f.Weight = strconv.FormatFloat(num, 'f', -1, 64)
		}
	}
	f.LineHeight = LineHeight(get("lineHeight"), size)
	return f
}

// LineHeight converts a line-height option to pixels. Numbers and unit-less
// strings are factors of size; "normal" and unparsable values use 1.2.
func LineHeight(v any, size float64) float64 {
	if n, ok := v.(string); ok {
		if l, ok := ParseLength(n); ok {
			return l.Px(size)
		}
		return size * defaultLineHeight
	}
	if n, ok := options.ToFloat(v); ok {
		return size * n
	}
	return size * defaultLineHeight
}

func toSize(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		l, ok := ParseLength(s)
		if !ok {
			return 0, false
		}
		if l.Unit == UnitNone {
			return l.Value, true
		}
		return l.Px(defaultSize), true
	}
	return options.ToFloat(v)
}
