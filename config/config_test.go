package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/chartcfg/defaults"
	"github.com/ByLCY/chartcfg/options"
)

func oneDataset(chartType string, opts map[string]any) *Definition {
	return &Definition{
		Type: chartType,
		Data: &Data{
			Labels:   []any{"a", "b", "c"},
			Datasets: []*Dataset{{Label: "first", Data: []any{1, 2, 3}}},
		},
		Options: opts,
	}
}

func lookup(t *testing.T, n *options.Node, path string) any {
	t.Helper()
	v, ok := n.Lookup(path)
	require.True(t, ok, "path %s", path)
	return v
}

func TestLineChartEndToEnd(t *testing.T) {
	cfg := New(oneDataset("line", nil), nil)

	assert.ElementsMatch(t, []string{"x", "y"}, cfg.ScaleIDs())
	x, y := cfg.Scale("x"), cfg.Scale("y")
	require.NotNil(t, x)
	require.NotNil(t, y)

	assert.Equal(t, "x", x.Value("axis"))
	assert.Equal(t, "y", y.Value("axis"))

	_, own := x.Own("type")
	assert.False(t, own, "scale nodes stay sparse")
	assert.Equal(t, "category", x.Value("type"))
	assert.Equal(t, "linear", y.Value("type"))

	assert.Equal(t, "#666", lookup(t, x, "ticks.color"))
	assert.Equal(t, "#666", lookup(t, y, "ticks.color"))
	assert.Equal(t, 3, lookup(t, x, "ticks.autoSkipPadding"))
	assert.Equal(t, 11, lookup(t, y, "ticks.maxTicksLimit"))
	assert.Equal(t, "rgba(0,0,0,0.1)", lookup(t, y, "gridLines.color"))
	assert.Equal(t, 4, lookup(t, x, "title.padding.top"))

	assert.Equal(t, "x", cfg.DatasetScaleID(0, "x"))
	assert.Equal(t, "y", cfg.DatasetScaleID(0, "y"))
	assert.Equal(t, "", cfg.DatasetScaleID(3, "y"))
	assert.Equal(t, "x", cfg.IndexAxis())
}

func TestScaleSynthesisPerChartType(t *testing.T) {
	cases := []struct {
		chartType string
		axes      map[string]string
	}{
		{"line", map[string]string{"x": "x", "y": "y"}},
		{"bar", map[string]string{"x": "x", "y": "y"}},
		{"horizontalBar", map[string]string{"x": "x", "y": "y"}},
		{"scatter", map[string]string{"x": "x", "y": "y"}},
		{"bubble", map[string]string{"x": "x", "y": "y"}},
		{"radar", map[string]string{"r": "r"}},
		{"polarArea", map[string]string{"r": "r"}},
		{"pie", map[string]string{}},
		{"doughnut", map[string]string{}},
		{"unknown", map[string]string{}},
	}
	for _, tc := range cases {
		t.Run(tc.chartType, func(t *testing.T) {
			cfg := New(oneDataset(tc.chartType, nil), nil)
			got := map[string]string{}
			for _, id := range cfg.ScaleIDs() {
				got[id] = cfg.Scale(id).String("axis", "")
			}
			assert.Equal(t, tc.axes, got)
		})
	}
}

func TestHorizontalBarSwapsPlaceholders(t *testing.T) {
	cfg := New(oneDataset("horizontalBar", nil), nil)

	assert.Equal(t, "y", cfg.IndexAxis())
	assert.Equal(t, "category", cfg.Scale("y").Value("type"))
	assert.Equal(t, "left", cfg.Scale("y").Value("position"))
	assert.Equal(t, "linear", cfg.Scale("x").Value("type"))
	assert.Equal(t, true, cfg.Scale("x").Value("beginAtZero"))
}

func TestMixedDatasetOnHorizontalBar(t *testing.T) {
	def := oneDataset("horizontalBar", nil)
	def.Data.Datasets = append(def.Data.Datasets, &Dataset{Type: "line", Data: []any{4, 5, 6}})
	cfg := New(def, nil)

	assert.ElementsMatch(t, []string{"x", "y"}, cfg.ScaleIDs())
	assert.Equal(t, "y", cfg.DatasetScaleID(1, "y"))
	assert.Equal(t, "category", cfg.Scale("y").Value("type"))
	assert.Equal(t, "linear", cfg.Scale("x").Value("type"))
}

func TestDatasetIndexAxisOverride(t *testing.T) {
	def := oneDataset("bar", nil)
	def.Data.Datasets[0].IndexAxis = "y"
	cfg := New(def, nil)

	assert.Equal(t, "category", cfg.Scale("y").Value("type"))
	assert.Equal(t, "linear", cfg.Scale("x").Value("type"))
}

func TestAttachDefaultsLookups(t *testing.T) {
	reg := defaults.Builtin()
	raw := map[string]any{
		"color": "red",
		"hover": map[string]any{"intersect": true},
	}
	opts := AttachDefaults(raw, "bar", reg)

	assert.Equal(t, "red", opts.Value("color"), "own keys win")
	assert.Equal(t, true, lookup(t, opts, "hover.intersect"))
	assert.Equal(t, "index", lookup(t, opts, "hover.mode"), "nested keys fall back on type options")
	assert.Equal(t, 0.8, opts.Value("categoryPercentage"), "then dataset defaults")
	assert.Equal(t, 12, lookup(t, opts, "font.size"), "then global defaults")
	assert.Nil(t, opts.Value("missing"))

	_, isMap := raw["hover"].(map[string]any)
	assert.True(t, isMap, "raw options are not modified")
	assert.Len(t, raw, 2)

	other := AttachDefaults(raw, "bar", reg)
	assert.NotSame(t, opts, other)

	plain := AttachDefaults(map[string]any{}, "unknown", reg)
	assert.Same(t, reg.Global, plain.Parent())
}

func TestAttachDefaultsIsIdempotent(t *testing.T) {
	reg := defaults.Builtin()
	opts := AttachDefaults(map[string]any{"hover": map[string]any{"intersect": true}}, "line", reg)
	parent := opts.Parent()
	hoverParent := opts.Child("hover").Parent()

	options.Thread(opts, parent)
	options.Thread(opts, parent)

	assert.Same(t, parent, opts.Parent())
	assert.Same(t, hoverParent, opts.Child("hover").Parent())
	assert.Equal(t, "index", lookup(t, opts, "hover.mode"))
}

func TestExplicitScaleOverrides(t *testing.T) {
	cfg := New(oneDataset("bar", map[string]any{
		"scales": map[string]any{
			"y": map[string]any{
				"ticks": map[string]any{"color": "red"},
			},
		},
	}), nil)

	y := cfg.Scale("y")
	assert.Equal(t, "red", lookup(t, y, "ticks.color"))
	assert.Equal(t, 11, lookup(t, y, "ticks.maxTicksLimit"))
	assert.Equal(t, 0, lookup(t, y, "ticks.minRotation"))
	assert.Equal(t, true, y.Value("beginAtZero"))
	assert.Equal(t, "#666", lookup(t, cfg.Scale("x"), "ticks.color"))
	assert.Equal(t, true, cfg.Scale("x").Value("offset"))
}

func TestPlaceholderSiblingConfig(t *testing.T) {
	cfg := New(oneDataset("line", map[string]any{
		"scales": map[string]any{
			"_value_": map[string]any{
				"ticks": map[string]any{"color": "green"},
			},
			"y": map[string]any{"position": "right"},
		},
	}), nil)

	assert.Equal(t, []string{"y", "x"}, cfg.ScaleIDs())
	y := cfg.Scale("y")
	assert.Equal(t, "green", lookup(t, y, "ticks.color"))
	assert.Equal(t, "right", y.Value("position"))
	assert.Equal(t, "linear", y.Value("type"))
	assert.Equal(t, 11, lookup(t, y, "ticks.maxTicksLimit"))
	assert.Nil(t, cfg.Scale("_value_"))
}

func TestCustomScaleIDs(t *testing.T) {
	def := oneDataset("line", map[string]any{
		"scales": map[string]any{
			"left-axis": map[string]any{"position": "left"},
		},
	})
	def.Data.Datasets = append(def.Data.Datasets, &Dataset{YAxisID: "right-axis"})
	cfg := New(def, nil)

	assert.ElementsMatch(t, []string{"left-axis", "x", "right-axis"}, cfg.ScaleIDs())
	assert.Equal(t, "left-axis", cfg.DatasetScaleID(0, "y"), "the first explicit id of an axis is the default")
	assert.Equal(t, "right-axis", cfg.DatasetScaleID(1, "y"))
	assert.Equal(t, "y", cfg.Scale("left-axis").Value("axis"))
	assert.Equal(t, "y", cfg.Scale("right-axis").Value("axis"))
	assert.Equal(t, "linear", cfg.Scale("right-axis").Value("type"))
	assert.Nil(t, cfg.Scale("y"))
}

func TestExplicitAxisOptionIsKept(t *testing.T) {
	cfg := New(oneDataset("line", map[string]any{
		"scales": map[string]any{
			"value": map[string]any{"axis": "y", "type": "logarithmic"},
		},
	}), nil)

	v := cfg.Scale("value")
	require.NotNil(t, v)
	assert.Equal(t, "y", v.Value("axis"))
	assert.Equal(t, "logarithmic", v.Value("type"))
	assert.Equal(t, "value", cfg.DatasetScaleID(0, "y"))
	assert.Equal(t, "#666", lookup(t, v, "ticks.color"))
}

func TestMixedDatasetTypesLayerDefaults(t *testing.T) {
	def := oneDataset("line", nil)
	def.Data.Datasets = append(def.Data.Datasets, &Dataset{Type: "bar"})
	cfg := New(def, nil)

	x := cfg.Scale("x")
	assert.Equal(t, "category", x.Value("type"))
	assert.Equal(t, true, x.Value("offset"), "the bar dataset adds its index scale defaults below the line ones")
	assert.Equal(t, true, lookup(t, x, "gridLines.offsetGridLines"))
	assert.Equal(t, true, cfg.Scale("y").Value("beginAtZero"))
}

func TestRegistryUntouchedByResolution(t *testing.T) {
	reg := defaults.Builtin()
	for i := 0; i < 3; i++ {
		def := oneDataset("bar", map[string]any{
			"scales": map[string]any{
				"x": map[string]any{"ticks": map[string]any{"color": "red"}},
			},
		})
		def.Data.Datasets = append(def.Data.Datasets, &Dataset{Type: "line"})
		New(def, reg)
	}

	bar := reg.Type("bar")
	index := bar.Scales.Child("_index_")
	assert.Nil(t, index.Parent())
	assert.Nil(t, index.Child("gridLines").Parent())
	assert.Nil(t, reg.Type("line").Scales.Child("_index_").Parent())
	assert.Same(t, reg.Scale, reg.ScaleType("category").Parent())
	assert.Equal(t, "#666", reg.Scale.Child("ticks").Value("color"))
	assert.True(t, index.Frozen())
}

func TestBuildScaleOptionsTwice(t *testing.T) {
	reg := defaults.Builtin()
	cfg := New(oneDataset("bar", map[string]any{
		"scales": map[string]any{"y": map[string]any{"ticks": map[string]any{"color": "red"}}},
	}), reg)

	set := BuildScaleOptions(cfg.Type(), cfg.Options(), cfg.Data(), reg)
	y := set.Scales.Child("y")
	require.NotNil(t, y)
	assert.Equal(t, "red", lookup(t, y, "ticks.color"))
	assert.Equal(t, 11, lookup(t, y, "ticks.maxTicksLimit"))
	assert.Equal(t, "#666", lookup(t, set.Scales.Child("x"), "ticks.color"))
}

func TestNewWithoutDefinition(t *testing.T) {
	cfg := New(nil, nil)

	assert.Equal(t, "", cfg.Type())
	require.NotNil(t, cfg.Data())
	assert.NotNil(t, cfg.Data().Datasets)
	assert.NotNil(t, cfg.Data().Labels)
	assert.Empty(t, cfg.ScaleIDs())
	assert.Equal(t, "#666", cfg.Options().Value("color"))
	assert.Nil(t, cfg.Plugins())
}

func TestDataContainersKeepIdentity(t *testing.T) {
	def := oneDataset("line", nil)
	data := def.Data
	first := data.Datasets[0]
	cfg := New(def, nil)

	assert.Same(t, data, cfg.Data())
	assert.Same(t, first, cfg.Data().Datasets[0])

	cfg.Update(map[string]any{"color": "red"})
	assert.Same(t, data, cfg.Data())
	assert.Same(t, first, cfg.Data().Datasets[0])
}

func TestUpdateRecomputes(t *testing.T) {
	cfg := New(oneDataset("line", map[string]any{
		"scales": map[string]any{
			"y": map[string]any{"ticks": map[string]any{"color": "blue"}},
		},
	}), nil)
	before := cfg.Options()

	cfg.Update(map[string]any{"color": "red"})
	assert.NotSame(t, before, cfg.Options(), "options are replaced wholesale")
	assert.Equal(t, "red", cfg.Options().Value("color"))
	assert.Equal(t, "blue", lookup(t, cfg.Scale("y"), "ticks.color"), "scale config survives an update without scales")

	cfg.Update(map[string]any{
		"scales": map[string]any{
			"y": map[string]any{"ticks": map[string]any{"color": "green"}},
		},
	})
	assert.Equal(t, "green", lookup(t, cfg.Scale("y"), "ticks.color"))
	assert.Equal(t, "#666", cfg.Options().Value("color"))

	cfg.Data().Datasets[0].Type = "radar"
	cfg.Update(nil)
	assert.ElementsMatch(t, []string{"y", "r"}, cfg.ScaleIDs(), "stale dataset scales are dropped")
	assert.Equal(t, "radialLinear", cfg.Scale("r").Value("type"))
	assert.Equal(t, "chartArea", cfg.Scale("r").Value("position"))
}

func TestDatasetAxisID(t *testing.T) {
	ds := &Dataset{XAxisID: "a", YAxisID: "b", RAxisID: "c", Fields: map[string]any{"zAxisID": "d"}}
	assert.Equal(t, "a", ds.AxisID("x"))
	assert.Equal(t, "b", ds.AxisID("y"))
	assert.Equal(t, "c", ds.AxisID("r"))
	assert.Equal(t, "d", ds.AxisID("z"))
	assert.Equal(t, "", ds.AxisID("w"))
}
