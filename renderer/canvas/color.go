package canvasrenderer

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/colornames"
)

var defaultColor = canvas.Hex("#666666")

// parseColor 解析 CSS 颜色：#rgb、#rrggbb、#rrggbbaa、rgb()/rgba() 以及颜色名。
// 无法识别时返回 fallback。
func parseColor(s string, fallback color.Color) color.Color {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return fallback
	case v == "transparent":
		return color.RGBA{0, 0, 0, 0}
	case strings.HasPrefix(v, "#"):
		switch len(v) {
		case 4, 5, 7, 9:
			return canvas.Hex(v)
		}
		return fallback
	case strings.HasPrefix(v, "rgb"):
		if c, ok := parseRGB(v); ok {
			return c
		}
		return fallback
	}
	if c, ok := colornames.Map[v]; ok {
		return c
	}
	return fallback
}

func parseRGB(v string) (color.Color, bool) {
	open := strings.IndexByte(v, '(')
	end := strings.LastIndexByte(v, ')')
	if open == -1 || end < open {
		return nil, false
	}
	parts := strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return nil, false
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		n, ok := channel(parts[i], 255)
		if !ok {
			return nil, false
		}
		ch[i] = n
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, ok := channel(parts[3], 1)
		if !ok {
			return nil, false
		}
		alpha = a
	}
	return canvas.RGBA(ch[0]/255, ch[1]/255, ch[2]/255, alpha), true
}

// channel 解析单个分量，百分比按 max 折算，结果截断到 [0, max]。
func channel(s string, max float64) (float64, bool) {
	pct := strings.HasSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		f = f / 100 * max
	}
	if f < 0 {
		f = 0
	}
	if f > max {
		f = max
	}
	return f, true
}
