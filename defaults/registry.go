// Package defaults holds the default option registry: the global defaults,
// the generic and per-type scale defaults, and the per-chart-type defaults.
//
// All anchoring between default trees happens once in New; the resulting
// nodes are frozen, so resolving a chart configuration never changes them.
package defaults

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tiendc/go-deepcopy"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/chartcfg/options"
)

//go:embed defaults.yaml
var builtinYAML []byte

// ErrInvalidTable indicates a default table whose sections are not mappings.
var ErrInvalidTable = errors.New("defaults: invalid default table")

// TypeDefaults groups the defaults of one chart type.
type TypeDefaults struct {
	// Options are chart-level options of the type, falling back on Datasets.
	Options *options.Node
	// Datasets are dataset defaults of the type, falling back on the global node.
	Datasets *options.Node
	// Scales maps scale ids or _index_/_value_ placeholders to the scale
	// defaults datasets of this type bind to. Entries have no parent.
	Scales *options.Node
}

// Registry is a prepared, read-only default table.
type Registry struct {
	Global *options.Node
	Scale  *options.Node

	scales map[string]*options.Node
	types  map[string]*TypeDefaults
	table  map[string]any
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the registry built from the embedded default table.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		reg, err := Parse(builtinYAML)
		if err != nil {
			panic(fmt.Sprintf("defaults: embedded table: %v", err))
		}
		builtin = reg
	})
	return builtin
}

// Parse builds a registry from a YAML (or JSON) default table.
func Parse(data []byte) (*Registry, error) {
	var table map[string]any
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode default table: %w", err)
	}
	return New(table)
}

// Load reads a default table from r.
func Load(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read default table: %w", err)
	}
	return Parse(data)
}

// New prepares a registry from a decoded table with the sections global,
// scale, scales and types. Missing sections are treated as empty.
func New(table map[string]any) (*Registry, error) {
	global, err := section(table, "global")
	if err != nil {
		return nil, err
	}
	scale, err := section(table, "scale")
	if err != nil {
		return nil, err
	}
	scaleTypes, err := section(table, "scales")
	if err != nil {
		return nil, err
	}
	chartTypes, err := section(table, "types")
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		Global: options.FromMap(global),
		Scale:  options.FromMap(scale),
		scales: map[string]*options.Node{},
		types:  map[string]*TypeDefaults{},
		table:  table,
	}

	for name, raw := range scaleTypes {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: scales.%s", ErrInvalidTable, name)
		}
		node := options.FromMap(m)
		options.Thread(node, reg.Scale)
		reg.scales[name] = node
	}

	for name, raw := range chartTypes {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: types.%s", ErrInvalidTable, name)
		}
		td, err := newTypeDefaults(name, m, reg.Global)
		if err != nil {
			return nil, err
		}
		reg.types[name] = td
	}

	reg.Global.Freeze()
	reg.Scale.Freeze()
	for _, n := range reg.scales {
		n.Freeze()
	}
	for _, td := range reg.types {
		td.Options.Freeze()
		td.Datasets.Freeze()
		td.Scales.Freeze()
	}
	return reg, nil
}

func newTypeDefaults(name string, m map[string]any, global *options.Node) (*TypeDefaults, error) {
	opts, err := section(m, "options")
	if err != nil {
		return nil, fmt.Errorf("types.%s: %w", name, err)
	}
	datasets, err := section(m, "datasets")
	if err != nil {
		return nil, fmt.Errorf("types.%s: %w", name, err)
	}
	scales, err := section(m, "scales")
	if err != nil {
		return nil, fmt.Errorf("types.%s: %w", name, err)
	}
	td := &TypeDefaults{
		Options:  options.FromMap(opts),
		Datasets: options.FromMap(datasets),
		Scales:   options.FromMap(scales),
	}
	options.Thread(td.Datasets, global)
	options.Thread(td.Options, td.Datasets)
	return td, nil
}

func section(table map[string]any, key string) (map[string]any, error) {
	raw, ok := table[key]
	if !ok || raw == nil {
		return map[string]any{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T", ErrInvalidTable, key, raw)
	}
	return m, nil
}

// Type returns the defaults of a chart type, or nil when the type declares none.
func (r *Registry) Type(name string) *TypeDefaults {
	if r == nil {
		return nil
	}
	return r.types[name]
}

// ScaleType returns the defaults of a scale type, already anchored onto
// Scale, or nil when unknown.
func (r *Registry) ScaleType(name string) *options.Node {
	if r == nil {
		return nil
	}
	return r.scales[name]
}

// WithOverrides returns a new registry built from a copy of this registry's
// table with overrides merged in key by key. The receiver is left untouched.
func (r *Registry) WithOverrides(overrides map[string]any) (*Registry, error) {
	var table map[string]any
	if err := deepcopy.Copy(&table, &r.table); err != nil {
		return nil, fmt.Errorf("copy default table: %w", err)
	}
	if table == nil {
		table = map[string]any{}
	}
	merge(table, overrides)
	return New(table)
}

// merge writes src into dst; nested mappings present on both sides merge
// recursively, everything else replaces.
func merge(dst, src map[string]any) {
	for k, v := range src {
		sv, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		dv, ok := dst[k].(map[string]any)
		if !ok {
			dv = map[string]any{}
			dst[k] = dv
		}
		merge(dv, sv)
	}
}
