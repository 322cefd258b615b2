// Package config resolves chart configurations: it threads user options onto
// the default registry, assigns scales to axes and builds the per-scale
// option nodes layout code reads.
package config

import (
	"github.com/ByLCY/chartcfg/defaults"
	"github.com/ByLCY/chartcfg/options"
)

// Definition is a raw chart configuration as written by the user.
type Definition struct {
	Type    string         `yaml:"type" json:"type"`
	Data    *Data          `yaml:"data" json:"data"`
	Options map[string]any `yaml:"options" json:"options,omitempty"`
	Plugins any            `yaml:"plugins" json:"plugins,omitempty"`
}

// Data holds the chart labels and datasets. Config keeps the containers it
// was given, so references held by callers stay valid across updates.
type Data struct {
	Labels   []any      `yaml:"labels" json:"labels"`
	Datasets []*Dataset `yaml:"datasets" json:"datasets"`
}

// Dataset is one data series. Fields the core does not know about are kept
// in Fields.
type Dataset struct {
	Type      string         `yaml:"type,omitempty" json:"type,omitempty"`
	IndexAxis string         `yaml:"indexAxis,omitempty" json:"indexAxis,omitempty"`
	XAxisID   string         `yaml:"xAxisID,omitempty" json:"xAxisID,omitempty"`
	YAxisID   string         `yaml:"yAxisID,omitempty" json:"yAxisID,omitempty"`
	RAxisID   string         `yaml:"rAxisID,omitempty" json:"rAxisID,omitempty"`
	Label     string         `yaml:"label,omitempty" json:"label,omitempty"`
	Data      []any          `yaml:"data,omitempty" json:"data,omitempty"`
	Fields    map[string]any `yaml:",inline" json:"-"`
}

// AxisID returns the scale id the dataset binds to axis, or "".
func (d *Dataset) AxisID(axis string) string {
	switch axis {
	case "x":
		return d.XAxisID
	case "y":
		return d.YAxisID
	case "r":
		return d.RAxisID
	}
	if s, ok := d.Fields[axis+"AxisID"].(string); ok {
		return s
	}
	return ""
}

// Config is a resolved chart configuration.
type Config struct {
	reg       *defaults.Registry
	typ       string
	data      *Data
	options   *options.Node
	plugins   any
	rawScales map[string]any
	bindings  []map[string]string
}

// New resolves def against reg. A nil definition yields an empty config; a
// nil registry means the built-in defaults.
func New(def *Definition, reg *defaults.Registry) *Config {
	if def == nil {
		def = &Definition{}
	}
	if reg == nil {
		reg = defaults.Builtin()
	}
	if def.Data == nil {
		def.Data = &Data{}
	}
	if def.Data.Datasets == nil {
		def.Data.Datasets = []*Dataset{}
	}
	if def.Data.Labels == nil {
		def.Data.Labels = []any{}
	}

	c := &Config{
		reg:     reg,
		typ:     def.Type,
		data:    def.Data,
		plugins: def.Plugins,
	}
	if raw, ok := def.Options["scales"].(map[string]any); ok {
		c.rawScales = raw
	}
	c.options = AttachDefaults(def.Options, c.typ, reg)
	c.installScales(c.options)
	return c
}

// Update replaces the options with newOptions threaded onto the type
// defaults and rebuilds every scale node from the current data and type.
// When newOptions has no scales entry the previous scale configuration is
// kept.
func (c *Config) Update(newOptions map[string]any) {
	raw := make(map[string]any, len(newOptions)+1)
	for k, v := range newOptions {
		raw[k] = v
	}
	if scales, ok := raw["scales"].(map[string]any); ok {
		c.rawScales = scales
	} else if c.rawScales != nil {
		raw["scales"] = c.rawScales
	}
	opts := AttachDefaults(raw, c.typ, c.reg)
	c.installScales(opts)
	c.options = opts
}

func (c *Config) installScales(opts *options.Node) {
	set := BuildScaleOptions(c.typ, opts, c.data, c.reg)
	opts.Set("scales", set.Scales)
	c.bindings = set.Bindings
}

// Type returns the chart type.
func (c *Config) Type() string { return c.typ }

// Data returns the chart data.
func (c *Config) Data() *Data { return c.data }

// SetData replaces the chart data. Scales are rebuilt on the next Update.
func (c *Config) SetData(d *Data) { c.data = d }

// Options returns the effective option tree. It is read only: change
// options through Update so scale inheritance stays consistent.
func (c *Config) Options() *options.Node { return c.options }

// Plugins returns the plugin configuration as given.
func (c *Config) Plugins() any { return c.plugins }

// Registry returns the registry the config was resolved against.
func (c *Config) Registry() *defaults.Registry { return c.reg }

// Scale returns the resolved option node of scale id, or nil.
func (c *Config) Scale(id string) *options.Node {
	return c.options.Child("scales").Child(id)
}

// ScaleIDs lists the resolved scale ids: explicit ones first, then the ones
// implied by datasets.
func (c *Config) ScaleIDs() []string {
	return c.options.Child("scales").Keys()
}

// IndexAxis returns the chart's index axis.
func (c *Config) IndexAxis() string {
	return ResolveIndexAxis(c.typ, c.options, c.reg)
}

// DatasetScaleID returns the scale id dataset i is bound to on axis, or ""
// when the dataset's type declares no default scale for that axis.
func (c *Config) DatasetScaleID(i int, axis string) string {
	if i < 0 || i >= len(c.bindings) {
		return ""
	}
	return c.bindings[i][axis]
}
