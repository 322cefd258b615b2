package config

import (
	"github.com/ByLCY/chartcfg/defaults"
	"github.com/ByLCY/chartcfg/options"
)

// AttachDefaults converts raw into a new option node that falls back on the
// chart type's option defaults (which fall back on its dataset defaults and
// then the global defaults), or directly on the global defaults for types
// without defaults. Nested mappings are threaded onto their counterparts at
// every depth. raw itself is never modified.
func AttachDefaults(raw map[string]any, chartType string, reg *defaults.Registry) *options.Node {
	if reg == nil {
		reg = defaults.Builtin()
	}
	parent := reg.Global
	if td := reg.Type(chartType); td != nil {
		parent = td.Options
	}
	n := options.FromMap(raw)
	options.Thread(n, parent)
	return n
}

// ScaleSet is the result of BuildScaleOptions.
type ScaleSet struct {
	// Scales maps scale id to its resolved option node.
	Scales *options.Node
	// Bindings maps, per dataset index, an axis to the scale id the dataset uses.
	Bindings []map[string]string
}

// BuildScaleOptions resolves one option node per scale id from the explicit
// scale configuration in opts.scales and the default scales the datasets'
// types declare. Each node's fallback chain is:
//
//	explicit config → _index_/_value_ sibling config → dataset type scale
//	defaults (in dataset order) → scale-type defaults → generic scale defaults
//
// and every nested mapping found along that chain is threaded the same way.
// Shared default nodes are reached through overlay views and never modified.
// Unknown types and ids are skipped silently.
func BuildScaleOptions(chartType string, opts *options.Node, data *Data, reg *defaults.Registry) *ScaleSet {
	if reg == nil {
		reg = defaults.Builtin()
	}
	var configScales *options.Node
	if v, ok := opts.Own("scales"); ok {
		configScales, _ = v.(*options.Node)
	}
	chartIndexAxis := ResolveIndexAxis(chartType, opts, reg)

	scales := options.New()
	axes := map[string]string{}
	firstIDs := map[string]string{}
	// last fallback layer of every scale; the next layer is threaded below it
	last := map[string]*options.Node{}

	for _, id := range configScales.Keys() {
		if id == IndexPlaceholder || id == ValuePlaceholder {
			continue
		}
		sc := ownNode(configScales, id)
		if sc == nil {
			continue
		}
		axis := DetermineAxis(id, sc)
		last[id] = sc
		if sibling := ownNode(configScales, PlaceholderForAxis(axis, chartIndexAxis)); sibling != nil {
			options.Thread(sc, sibling)
			last[id] = sibling
		}
		axes[id] = axis
		if _, ok := firstIDs[axis]; !ok {
			firstIDs[axis] = id
		}
		scales.Set(id, sc)
	}

	var datasets []*Dataset
	if data != nil {
		datasets = data.Datasets
	}
	bindings := make([]map[string]string, len(datasets))
	for i, ds := range datasets {
		bindings[i] = map[string]string{}
		if ds == nil {
			continue
		}
		typ := ds.Type
		if typ == "" {
			typ = chartType
		}
		indexAxis := ds.IndexAxis
		if indexAxis == "" {
			indexAxis = ResolveIndexAxis(typ, opts, reg)
		}
		td := reg.Type(typ)
		if td == nil {
			continue
		}
		for _, defaultID := range td.Scales.Keys() {
			axis := AxisForPlaceholder(defaultID, indexAxis)
			id := ds.AxisID(axis)
			if id == "" {
				id = firstIDs[axis]
			}
			if id == "" {
				id = axis
			}
			bindings[i][axis] = id

			scale := ownNode(scales, id)
			if scale == nil {
				scale = ownNode(configScales, id)
				if scale == nil {
					scale = options.New()
				}
				scales.Set(id, scale)
			}
			if _, ok := scale.Own("axis"); !ok {
				axes[id] = axis
			}

			shared := ownNode(td.Scales, defaultID)
			if shared == nil {
				continue
			}
			tail := last[id]
			if tail == nil {
				tail = scale
			}
			if tail == shared || tail.Base() == shared {
				continue
			}
			layer := options.Overlay(shared)
			options.Thread(tail, layer)
			last[id] = layer
		}
	}

	for _, id := range scales.Keys() {
		scale := ownNode(scales, id)
		target := last[id]
		if target == nil {
			target = scale
		}
		if st := reg.ScaleType(scale.String("type", "")); st != nil {
			options.Thread(target, st)
		}
		options.ThreadChildren(scale)
		if _, ok := scale.Own("axis"); !ok {
			scale.Set("axis", axes[id])
		}
	}

	return &ScaleSet{Scales: scales, Bindings: bindings}
}

func ownNode(n *options.Node, key string) *options.Node {
	v, ok := n.Own(key)
	if !ok {
		return nil
	}
	child, _ := v.(*options.Node)
	return child
}
