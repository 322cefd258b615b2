// Package label measures, positions and draws rotated multi-line text labels
// such as tick labels and scale titles.
package label

// TextMetrics is the result of a text measurement. Only Width is used.
type TextMetrics struct {
	Width float64
}

// Surface is the drawing surface labels are measured with and painted on.
// Coordinates and sizes are in CSS pixels, angles in radians.
type Surface interface {
	MeasureText(text string) TextMetrics
	FillText(text string, x, y float64)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(rad float64)

	SetFont(font string)
	SetFillStyle(color string)
	SetTextBaseline(baseline string)
	SetTextAlign(align string)
	SetShadow(blur float64, color string)
}

// Lines normalizes a label value to an ordered sequence of lines. Strings
// become one line; sequences keep one line per element.
func Lines(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, toString(item))
		}
		return out
	default:
		return []string{toString(t)}
	}
}
