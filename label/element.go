package label

import (
	"math"

	"github.com/ByLCY/chartcfg/font"
)

// ElementOptions style a persistent label element.
type ElementOptions struct {
	Align           string    `json:"align"`
	Anchor          string    `json:"anchor"`
	Display         bool      `json:"display"`
	Font            font.Font `json:"font"`
	Color           string    `json:"color"`
	TextShadowBlur  float64   `json:"textShadowBlur,omitempty"`
	TextShadowColor string    `json:"textShadowColor,omitempty"`
}

// DefaultElementOptions mirror the label element defaults.
func DefaultElementOptions() ElementOptions {
	return ElementOptions{Align: "center", Anchor: "center", Display: true}
}

// Dimensions is an unrotated or rotated label size.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element is a label owned by a chart element and kept across draw passes.
// Its text and rotation can change; the measured size is cached until the
// text actually changes.
type Element struct {
	X, Y    float64
	Options ElementOptions

	rotation float64 // radians
	lines    []string
	size     *Dimensions
}

// NewElement returns an element with default options.
func NewElement() *Element {
	return &Element{Options: DefaultElementOptions()}
}

// SetRotation sets the rotation in degrees.
func (e *Element) SetRotation(deg float64) {
	e.rotation = deg * math.Pi / 180
}

// Rotation returns the rotation in degrees.
func (e *Element) Rotation() float64 {
	return e.rotation * 180 / math.Pi
}

// SetText replaces the text. The cached size is dropped only when the line
// count or a line's content differs from the current text.
func (e *Element) SetText(lines ...string) {
	if linesChanged(e.lines, lines) {
		e.size = nil
	}
	e.lines = lines
}

// Text returns the current lines.
func (e *Element) Text() []string { return e.lines }

// Measured reports whether a size is cached.
func (e *Element) Measured() bool { return e.size != nil }

// Measure returns the unrotated size, measuring with s when nothing is cached.
func (e *Element) Measure(s Surface) Dimensions {
	if e.size != nil {
		return *e.size
	}
	f := e.Options.Font
	d := Dimensions{
		Width:  textWidths.longest(s, f.String(), e.lines),
		Height: float64(len(e.lines)) * f.LineHeight,
	}
	e.size = &d
	return d
}

// CenterPoint returns the anchor position and the rotated bounding size,
// for layout and collision checks.
func (e *Element) CenterPoint(s Surface) (Point, Dimensions) {
	d := e.Measure(s)
	r := rotated(d.Width, d.Height, e.rotation)
	return Point{X: e.X, Y: e.Y}, Dimensions{Width: r.W, Height: r.H}
}

// Draw paints the element at its position. The surface state is restored
// before Draw returns.
func (e *Element) Draw(s Surface) {
	if !e.Options.Display || len(e.lines) == 0 {
		return
	}
	opts := e.Options
	lineHeight := opts.Font.LineHeight
	size := e.Measure(s)

	s.Save()
	defer s.Restore()

	s.Translate(e.X, e.Y)
	s.Rotate(e.rotation)
	s.SetFont(opts.Font.String())
	s.SetFillStyle(opts.Color)
	s.SetTextBaseline("middle")
	s.SetTextAlign(opts.Align)
	s.SetShadow(opts.TextShadowBlur, opts.TextShadowColor)

	var x float64
	switch opts.Align {
	case "left":
		x = -size.Width / 2
	case "right":
		x = size.Width / 2
	}
	y := size.Height - lineHeight
	for i := len(e.lines) - 1; i >= 0; i-- {
		s.FillText(e.lines[i], x, y)
		y -= lineHeight
	}
}

func linesChanged(a, b []string) bool {
	if a == nil || len(a) != len(b) {
		return true
	}
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}
