package config

import (
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/chartcfg/defaults"
	"github.com/ByLCY/chartcfg/options"
)

// Placeholder scale ids used by chart-type defaults.
const (
	IndexPlaceholder = "_index_"
	ValuePlaceholder = "_value_"
)

// ResolveIndexAxis returns the index axis ("x" or "y") of chartType. The
// per-type dataset override in opts (opts.<type>.datasets.indexAxis) wins,
// then indexAxis along the whole opts chain (user options and the chart
// type's defaults), then chartType's own dataset defaults, then "x".
func ResolveIndexAxis(chartType string, opts *options.Node, reg *defaults.Registry) string {
	if chartType != "" {
		if v, ok := opts.Lookup(chartType + ".datasets.indexAxis"); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	if s, ok := opts.Value("indexAxis").(string); ok && s != "" {
		return s
	}
	if td := reg.Type(chartType); td != nil {
		if s, ok := ownString(td.Datasets, "indexAxis"); ok {
			return s
		}
	}
	return "x"
}

// AxisForPlaceholder maps _index_ to indexAxis and _value_ to the other of
// x and y. Any other id is returned unchanged.
func AxisForPlaceholder(id, indexAxis string) string {
	switch id {
	case IndexPlaceholder:
		return indexAxis
	case ValuePlaceholder:
		if indexAxis == "x" {
			return "y"
		}
		return "x"
	}
	return id
}

// PlaceholderForAxis is the inverse of AxisForPlaceholder.
func PlaceholderForAxis(axis, indexAxis string) string {
	if axis == indexAxis {
		return IndexPlaceholder
	}
	return ValuePlaceholder
}

// AxisFromPosition maps an edge position to its axis, or "" when the
// position says nothing about the axis.
func AxisFromPosition(position string) string {
	switch position {
	case "top", "bottom":
		return "x"
	case "left", "right":
		return "y"
	}
	return ""
}

// DetermineAxis returns the axis a scale measures: x, y and r are their own
// axes; otherwise the scale's axis option, its position, and finally the
// lower-cased first letter of the id.
func DetermineAxis(id string, scale *options.Node) string {
	switch id {
	case "x", "y", "r":
		return id
	}
	if s := scale.String("axis", ""); s != "" {
		return s
	}
	if axis := AxisFromPosition(scale.String("position", "")); axis != "" {
		return axis
	}
	if id == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(id)
	return strings.ToLower(string(r))
}

func ownString(n *options.Node, key string) (string, bool) {
	v, ok := n.Own(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
