package font

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths for font sizes and line heights.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers like factors
	UnitPX                  // CSS pixels (1/96 in)
	UnitPT                  // points
	UnitMM                  // millimeters
	UnitEM                  // relative to the font size
	UnitPercent             // percent of the font size
)

// Conversion constants between px, pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToPt = 0.75
	PtToPx = 1.0 / PxToPt
	PxToMm = PxToPt * PtToMm
	MmToPx = 1.0 / PxToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitEM:
		return "em"
	case UnitPercent:
		return "%"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Px converts the length to pixels. Relative units (em, %, none) resolve
// against fontSize, itself in pixels.
func (l Length) Px(fontSize float64) float64 {
	switch l.Unit {
	case UnitPX:
		return l.Value
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	case UnitEM, UnitNone:
		return l.Value * fontSize
	case UnitPercent:
		return l.Value / 100 * fontSize
	}
	return l.Value
}

// ParseLength parses "12px", "9pt", "1.2em", "120%" or a bare number. The
// second result is false when value is not a length.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"em", UnitEM}, {"%", UnitPercent}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
