package label

import (
	"math"
	"strings"

	"github.com/ByLCY/chartcfg/font"
)

const (
	halfPI    = math.Pi / 2
	quarterPI = math.Pi / 4
)

// Size is a label's axis-aligned bounding box at some rotation. D is the
// diagonal of the unrotated box and R half of it; both are rotation invariant.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
	D float64 `json:"d"`
	R float64 `json:"r"`
}

// Point is an offset or position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Padding is the space a label occupies on each side of its anchor point.
type Padding struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Text is a measured label. Its unrotated size is computed once at creation.
type Text struct {
	surface Surface
	font    font.Font
	color   string
	lines   []string

	w, h, d, r float64
}

// NewText measures lines in f using s. A single string is one line.
func NewText(s Surface, f font.Font, color string, lines ...string) *Text {
	t := &Text{
		surface: s,
		font:    f,
		color:   color,
		lines:   lines,
	}
	t.w = textWidths.longest(s, f.String(), lines)
	t.h = float64(len(lines)) * f.LineHeight
	t.d = math.Hypot(t.w, t.h)
	t.r = t.d / 2
	return t
}

// Lines returns the label's lines.
func (t *Text) Lines() []string { return t.lines }

// Font returns the label's font.
func (t *Text) Font() font.Font { return t.font }

// Color returns the fill color.
func (t *Text) Color() string { return t.color }

// Width is the unrotated width.
func (t *Text) Width() float64 { return t.w }

// Height is the unrotated height: line count times line height.
func (t *Text) Height() float64 { return t.h }

// Size returns the bounding box of the label rotated by rad.
func (t *Text) Size(rad float64) Size {
	return rotated(t.w, t.h, rad)
}

func rotated(w, h, rad float64) Size {
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	d := math.Hypot(w, h)
	return Size{
		W: h*sin + w*cos,
		H: h*cos + w*sin,
		D: d,
		R: d / 2,
	}
}

// anchor flags decoded from an anchor code such as "lt", "b" or "tR".
type anchor struct {
	left, right, top, bottom, rotated bool
}

func parseAnchor(code string) anchor {
	if code == "" || code == "center" {
		return anchor{}
	}
	return anchor{
		left:    strings.ContainsRune(code, 'l'),
		right:   strings.ContainsRune(code, 'r'),
		top:     strings.ContainsRune(code, 't'),
		bottom:  strings.ContainsRune(code, 'b'),
		rotated: strings.ContainsRune(code, 'R'),
	}
}

// Center returns the offset from the anchor point to the label's center.
func (t *Text) Center(rad float64, code string) Point {
	return center(t.Size(rad), rad, parseAnchor(code))
}

func center(size Size, rad float64, a anchor) Point {
	var c Point
	halfWidth := size.W / 2
	halfHeight := size.H / 2

	if a.left {
		c.X = halfWidth
	}
	if a.right {
		c.X = -halfWidth
	}
	// 只有 t 分支把角度折算到 (-π/2, π/2)，b 分支直接使用原始角度
	if a.top {
		c.Y = halfHeight
		if a.rotated {
			rad = math.Mod(rad, halfPI)
			if rad > -quarterPI {
				c.X = math.Sin(rad) * halfHeight
			} else {
				c.X = math.Sin(rad-halfPI) * halfHeight
			}
		}
	}
	if a.bottom {
		c.Y = -halfHeight
		if a.rotated {
			if rad > -quarterPI {
				c.X = math.Sin(-rad) * halfHeight
			} else {
				c.X = math.Sin(rad+halfPI) * halfHeight
			}
		}
	}
	return c
}

// Padding splits the rotated bounding box around the anchor point.
func (t *Text) Padding(rad float64, code string) Padding {
	size := t.Size(rad)
	c := center(size, rad, parseAnchor(code))
	return Padding{
		Left:   size.W/2 - c.X,
		Right:  c.X + size.W/2,
		Top:    size.H/2 - c.Y,
		Bottom: c.Y + size.H/2,
	}
}

// Draw paints the label anchored at (x, y), rotated by rad. Lines are
// painted from the last one up, align sets the horizontal offset within the
// label box. The surface state is restored before Draw returns.
func (t *Text) Draw(x, y, rad float64, align, code string) {
	s := t.surface
	lineHeight := t.font.LineHeight
	c := t.Center(rad, code)

	var lx float64
	switch align {
	case "left":
		lx = -t.w / 2
	case "right":
		lx = t.w / 2
	default:
		align = "center"
	}

	s.Save()
	defer s.Restore()

	s.Translate(x+c.X, y+c.Y)
	s.Rotate(rad)
	s.SetFont(t.font.String())
	s.SetFillStyle(t.color)
	s.SetTextBaseline("middle")
	s.SetTextAlign(align)

	ly := t.h/2 - lineHeight/2
	for i := len(t.lines) - 1; i >= 0; i-- {
		s.FillText(t.lines[i], lx, ly)
		ly -= lineHeight
	}
}
