package layout

import (
	"math"
	"strconv"

	"github.com/ByLCY/chartcfg/label"
	"github.com/ByLCY/chartcfg/options"
)

const defaultMaxTicks = 11

func isNumericType(typ string) bool {
	switch typ {
	case "linear", "logarithmic", "radialLinear":
		return true
	}
	return false
}

func (b *builder) buildTicks(s *scaleLayout) []Tick {
	if s.numeric() {
		return b.numericTicks(s)
	}
	return b.categoryTicks(s)
}

// categoryTicks 使用 scale 自带的 labels，否则使用 data.labels。
func (b *builder) categoryTicks(s *scaleLayout) []Tick {
	labels, ok := s.node.Value("labels").([]any)
	if !ok {
		labels = b.cfg.Data().Labels
	}
	ticks := make([]Tick, 0, len(labels))
	for i, l := range labels {
		ticks = append(ticks, Tick{Value: float64(i), Label: label.Lines(l)})
	}
	return ticks
}

// numericTicks 根据绑定到该坐标轴的数据集计算"好看"的刻度。
func (b *builder) numericTicks(s *scaleLayout) []Tick {
	values := b.values(s)
	if len(values) == 0 {
		values = []float64{0, 1}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if s.node.Bool("beginAtZero", false) {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	if v, ok := options.ToFloat(s.node.Value("min")); ok && finite(v) {
		lo = v
	}
	if v, ok := options.ToFloat(s.node.Value("max")); ok && finite(v) {
		hi = v
	}
	maxTicks := int(lookupFloat(s.node, "ticks.maxTicksLimit", defaultMaxTicks))

	var ticks []Tick
	steps := niceTicks(lo, hi, maxTicks)
	for _, v := range steps {
		ticks = append(ticks, Tick{Value: v, Label: []string{formatTick(v, steps)}})
	}
	return ticks
}

// values 收集绑定到该坐标轴的数据；对象形式的数据点按轴名取值（如 {x: 1, y: 2}）。
func (b *builder) values(s *scaleLayout) []float64 {
	var out []float64
	for i, ds := range b.cfg.Data().Datasets {
		if ds == nil || b.cfg.DatasetScaleID(i, s.axis) != s.id {
			continue
		}
		for _, raw := range ds.Data {
			v := raw
			if m, ok := raw.(map[string]any); ok {
				v = m[s.axis]
			}
			if f, ok := options.ToFloat(v); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
				out = append(out, f)
			}
		}
	}
	return out
}

// niceTicks 在 [lo, hi] 上生成间距为 1、2、5 × 10^n 的刻度，数量不超过 maxTicks。
func niceTicks(lo, hi float64, maxTicks int) []float64 {
	if maxTicks < 2 {
		maxTicks = 2
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	if !finite(lo) || !finite(hi) || !finite(hi-lo) {
		lo, hi = 0, 1
	}
	if hi == lo {
		lo--
		hi++
	}
	spacing := niceNum(niceNum(hi-lo, false)/float64(maxTicks-1), true)
	start := math.Floor(lo/spacing) * spacing
	end := math.Ceil(hi/spacing) * spacing
	steps := math.Round((end - start) / spacing)
	if !finite(steps) || steps < 0 {
		return []float64{lo, hi}
	}
	n := int(steps)
	for n+1 > maxTicks {
		spacing = niceNum(spacing*1.5, true)
		start = math.Floor(lo/spacing) * spacing
		end = math.Ceil(hi/spacing) * spacing
		steps = math.Round((end - start) / spacing)
		if !finite(steps) || steps < 0 {
			return []float64{lo, hi}
		}
		n = int(steps)
	}

	decimals := stepDecimals(spacing)
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, roundTo(start+float64(i)*spacing, decimals))
	}
	return ticks
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func niceNum(r float64, round bool) float64 {
	if r <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(r))
	f := r / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * math.Pow(10, exp)
}

func stepDecimals(spacing float64) int {
	d := -int(math.Floor(math.Log10(spacing) + 1e-9))
	if d < 0 {
		return 0
	}
	return d
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	if r := math.Round(v*p) / p; finite(r) {
		return r
	}
	return v
}

func formatTick(v float64, ticks []float64) string {
	decimals := 0
	if len(ticks) > 1 {
		decimals = stepDecimals(math.Abs(ticks[1] - ticks[0]))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
