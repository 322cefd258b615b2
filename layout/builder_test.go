package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/chartcfg/config"
	"github.com/ByLCY/chartcfg/label"
)

// stubSurface 是测试用的最小绘图表面：每个字符宽 6px，其余操作均为空实现。
type stubSurface struct{}

func (stubSurface) MeasureText(text string) label.TextMetrics {
	return label.TextMetrics{Width: float64(utf8.RuneCountInString(text)) * 6}
}
func (stubSurface) FillText(string, float64, float64) {}
func (stubSurface) Save()                             {}
func (stubSurface) Restore()                          {}
func (stubSurface) Translate(float64, float64)        {}
func (stubSurface) Rotate(float64)                    {}
func (stubSurface) SetFont(string)                    {}
func (stubSurface) SetFillStyle(string)               {}
func (stubSurface) SetTextBaseline(string)            {}
func (stubSurface) SetTextAlign(string)               {}
func (stubSurface) SetShadow(float64, string)         {}

func buildChart(t *testing.T, def *config.Definition, opts BuildOptions) *Result {
	t.Helper()
	if opts.Surface == nil {
		opts.Surface = stubSurface{}
	}
	res, err := Build(config.New(def, nil), opts)
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	return res
}

func findScale(t *testing.T, res *Result, id string) ScaleBox {
	t.Helper()
	for _, s := range res.Scales {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("缺少坐标轴 %s", id)
	return ScaleBox{}
}

func lineChart(labels ...any) *config.Definition {
	return &config.Definition{
		Type: "line",
		Data: &config.Data{
			Labels:   labels,
			Datasets: []*config.Dataset{{Data: []any{3, 7, 4}}},
		},
	}
}

func TestBuildLineChart(t *testing.T) {
	res := buildChart(t, lineChart("Jan", "Feb", "Mar", "Apr", "May", "Jun"), BuildOptions{})

	if res.Width != 600 || res.Height != 400 {
		t.Fatalf("默认尺寸应为 600x400，实际 %gx%g", res.Width, res.Height)
	}
	x := findScale(t, res, "x")
	y := findScale(t, res, "y")
	if x.Position != "bottom" || y.Position != "left" {
		t.Fatalf("默认位置错误: x=%s y=%s", x.Position, y.Position)
	}
	area := res.ChartArea
	if area.Left <= 0 || area.Bottom >= 400 || area.Top != 0 || area.Right != 600 {
		t.Fatalf("图表区域未按坐标轴收缩: %+v", area)
	}
	if x.Rotation != 0 {
		t.Fatalf("短标签不应旋转，实际 %g", x.Rotation)
	}
	if len(x.Labels) != 6 {
		t.Fatalf("x 轴应保留 6 个标签，实际 %d", len(x.Labels))
	}
	for i := 1; i < len(x.Ticks); i++ {
		if x.Ticks[i].Pixel <= x.Ticks[i-1].Pixel {
			t.Fatalf("x 轴刻度应自左向右递增: %+v", x.Ticks)
		}
	}
	if x.Ticks[0].Pixel != area.Left || x.Ticks[5].Pixel != area.Right {
		t.Fatalf("非 offset 的类目轴应贴边: first=%g last=%g", x.Ticks[0].Pixel, x.Ticks[5].Pixel)
	}
	for _, l := range x.Labels {
		if l.Anchor != "t" || l.Extent.Top < x.Box.Top {
			t.Fatalf("x 轴标签应挂在轴线下方: %+v", l)
		}
	}

	if y.Ticks[0].Value != 3 || y.Ticks[len(y.Ticks)-1].Value != 7 {
		t.Fatalf("y 轴刻度范围应为 3..7，实际 %+v", y.Ticks)
	}
	if y.Ticks[0].Label[0] != "3.0" {
		t.Fatalf("刻度文本应按步长保留小数，实际 %q", y.Ticks[0].Label[0])
	}
	if y.Ticks[0].Pixel != area.Bottom {
		t.Fatalf("y 轴最小值应位于底部: %g vs %g", y.Ticks[0].Pixel, area.Bottom)
	}
	for _, l := range y.Labels {
		if l.Anchor != "r" || l.Extent.Right > area.Left {
			t.Fatalf("y 轴标签不应进入图表区域: %+v", l)
		}
	}
	if len(y.Lines) == 0 || y.Lines[0].Color != "rgba(0,0,0,0.1)" {
		t.Fatalf("刻度线颜色应来自 gridLines 默认值: %+v", y.Lines)
	}
}

func manyLabels(n int) []any {
	labels := make([]any, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Category %02d", i)
	}
	return labels
}

func TestAutoRotationAndSkip(t *testing.T) {
	res := buildChart(t, lineChart(manyLabels(40)...), BuildOptions{Debug: DebugOptions{Skipped: true}})
	x := findScale(t, res, "x")

	if math.Abs(x.Rotation-50) > 1e-9 {
		t.Fatalf("标签过密时应旋转到 maxRotation=50，实际 %g", x.Rotation)
	}
	if len(x.Labels) >= 40 || len(x.Labels) < 2 {
		t.Fatalf("autoSkip 应隐藏部分标签，实际保留 %d", len(x.Labels))
	}
	if len(x.Labels)+len(x.Skipped) != 40 {
		t.Fatalf("保留与跳过的标签总数应为 40，实际 %d+%d", len(x.Labels), len(x.Skipped))
	}
	for i := 1; i < len(x.Labels); i++ {
		prev, cur := x.Labels[i-1].Extent, x.Labels[i].Extent
		if cur.Left < prev.Right+3 {
			t.Fatalf("保留的标签发生重叠: %+v 与 %+v", prev, cur)
		}
	}
	for _, l := range x.Labels {
		if l.Anchor != "rt" {
			t.Fatalf("旋转后的标签应以右上角为锚点，实际 %q", l.Anchor)
		}
	}
}

func TestAutoSkipDisabled(t *testing.T) {
	def := lineChart(manyLabels(40)...)
	def.Options = map[string]any{
		"scales": map[string]any{
			"x": map[string]any{
				"ticks": map[string]any{"autoSkip": false, "maxRotation": 0},
			},
		},
	}
	res := buildChart(t, def, BuildOptions{})
	x := findScale(t, res, "x")
	if len(x.Labels) != 40 {
		t.Fatalf("关闭 autoSkip 后应保留全部标签，实际 %d", len(x.Labels))
	}
	if x.Rotation != 0 {
		t.Fatalf("maxRotation=0 时不应旋转，实际 %g", x.Rotation)
	}
}

func TestHorizontalBarLayout(t *testing.T) {
	res := buildChart(t, &config.Definition{
		Type: "horizontalBar",
		Data: &config.Data{
			Labels:   []any{"A", "B", "C"},
			Datasets: []*config.Dataset{{Data: []any{5, 12, 9}}},
		},
	}, BuildOptions{Width: 800, Height: 300})

	y := findScale(t, res, "y")
	x := findScale(t, res, "x")
	if y.Type != "category" || y.Position != "left" {
		t.Fatalf("横向柱状图的类目轴应在左侧: %+v", y)
	}
	if x.Ticks[0].Value != 0 {
		t.Fatalf("数值轴 beginAtZero 后应从 0 开始，实际 %g", x.Ticks[0].Value)
	}
	// offset 类目轴的刻度位于每个区间中心
	band := res.ChartArea.Height() / 3
	if got := y.Ticks[0].Pixel; math.Abs(got-(res.ChartArea.Bottom-band/2)) > 1e-9 {
		t.Fatalf("offset 刻度位置错误: %g", got)
	}
}

func TestScaleTitleInterpolation(t *testing.T) {
	def := lineChart("a", "b")
	def.Options = map[string]any{
		"unit": "kg",
		"scales": map[string]any{
			"y": map[string]any{
				"title": map[string]any{"display": true, "text": "Weight (${unit})"},
			},
		},
		"plugins": map[string]any{
			"title": map[string]any{"display": true, "text": "Legend at ${plugins.legend.position}"},
		},
	}
	padding := 8.0
	res := buildChart(t, def, BuildOptions{Padding: &padding})

	if res.Title == nil || res.Title.Lines[0] != "Legend at top" {
		t.Fatalf("图表标题插值失败: %+v", res.Title)
	}
	if res.Meta.Title != "Legend at top" {
		t.Fatalf("文档标题应取自图表标题，实际 %q", res.Meta.Title)
	}
	if res.ChartArea.Top <= padding {
		t.Fatalf("图表标题应占用顶部空间: %+v", res.ChartArea)
	}
	y := findScale(t, res, "y")
	if y.Title == nil || y.Title.Lines[0] != "Weight (kg)" {
		t.Fatalf("坐标轴标题插值失败: %+v", y.Title)
	}
	if math.Abs(y.Title.Rotation+math.Pi/2) > 1e-9 || y.Title.Extent.Left < y.Box.Left-1e-9 {
		t.Fatalf("左侧标题应逆时针旋转并位于坐标轴区域内: %+v", y.Title)
	}
}

func TestRadarLayout(t *testing.T) {
	res := buildChart(t, &config.Definition{
		Type: "radar",
		Data: &config.Data{
			Labels:   []any{"Speed", "Power", "Range", "Cost", "Weight"},
			Datasets: []*config.Dataset{{Data: []any{1, 2, 3, 4, 5}}},
		},
	}, BuildOptions{})

	if len(res.Scales) != 1 {
		t.Fatalf("雷达图只应有一个径向坐标轴，实际 %d", len(res.Scales))
	}
	r := res.Scales[0]
	if r.Axis != "r" || r.Position != "chartArea" {
		t.Fatalf("径向坐标轴属性错误: %+v", r)
	}
	if len(r.Lines) != 5 {
		t.Fatalf("应为每个角度标签生成一条角线，实际 %d", len(r.Lines))
	}
	if r.Labels[0].Lines[0] != "Speed" || r.Labels[0].Anchor != "b" {
		t.Fatalf("第一个角度标签应位于顶部并向上延伸: %+v", r.Labels[0])
	}
	if len(r.Labels) != 5+len(r.Ticks) {
		t.Fatalf("标签数应为角度标签加数值刻度，实际 %d", len(r.Labels))
	}
}

func TestRadialAnchor(t *testing.T) {
	cases := []struct {
		cos, sin float64
		want     string
	}{
		{0, -1, "b"},
		{1, 0, "l"},
		{-1, 0, "r"},
		{0, 1, "t"},
		{0.7, 0.7, "lt"},
		{-0.7, -0.7, "rb"},
	}
	for _, tc := range cases {
		if got := radialAnchor(tc.cos, tc.sin); got != tc.want {
			t.Fatalf("radialAnchor(%g, %g) = %q，期望 %q", tc.cos, tc.sin, got, tc.want)
		}
	}
}

func TestNiceTicks(t *testing.T) {
	cases := []struct {
		lo, hi  float64
		max     int
		first   float64
		last    float64
		count   int
		spacing float64
	}{
		{0, 7, 11, 0, 7, 8, 1},
		{0, 100, 11, 0, 100, 11, 10},
		{0, 1, 11, 0, 1, 11, 0.1},
		{3, 3, 11, 2, 4, 11, 0.2},
		{-12, 37, 6, -20, 40, 4, 20},
	}
	for _, tc := range cases {
		ticks := niceTicks(tc.lo, tc.hi, tc.max)
		if len(ticks) != tc.count || ticks[0] != tc.first || ticks[len(ticks)-1] != tc.last {
			t.Fatalf("niceTicks(%g, %g, %d) = %v", tc.lo, tc.hi, tc.max, ticks)
		}
		if got := ticks[1] - ticks[0]; math.Abs(got-tc.spacing) > 1e-9 {
			t.Fatalf("niceTicks(%g, %g) 步长为 %g，期望 %g", tc.lo, tc.hi, got, tc.spacing)
		}
		if len(ticks) > tc.max {
			t.Fatalf("刻度数 %d 超过上限 %d", len(ticks), tc.max)
		}
	}
}

func TestNonFiniteRangeFallsBack(t *testing.T) {
	for _, lo := range []float64{math.Inf(-1), math.Inf(1), math.NaN()} {
		ticks := niceTicks(lo, 5, 11)
		if len(ticks) == 0 {
			t.Fatalf("niceTicks(%g, 5) 不应返回空刻度", lo)
		}
		for _, v := range ticks {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("niceTicks(%g, 5) 包含非有限值: %v", lo, ticks)
			}
		}
	}
	if ticks := niceTicks(-1e308, 1e308, 11); ticks[0] != 0 || ticks[len(ticks)-1] != 1 {
		t.Fatalf("溢出的范围应退回 0..1，实际 %v", ticks)
	}
	if ticks := niceTicks(-9e307, 9e307, 11); len(ticks) == 0 {
		t.Fatalf("接近上限的范围不应返回空刻度")
	}

	checkY := func(name string, def *config.Definition) {
		t.Helper()
		y := findScale(t, buildChart(t, def, BuildOptions{}), "y")
		if len(y.Ticks) == 0 {
			t.Fatalf("%s: y 轴应有刻度", name)
		}
		for _, tk := range y.Ticks {
			if math.IsNaN(tk.Value) || math.IsInf(tk.Value, 0) || math.IsNaN(tk.Pixel) || math.IsInf(tk.Pixel, 0) {
				t.Fatalf("%s: 刻度包含非有限值 %+v", name, y.Ticks)
			}
		}
	}

	def := lineChart("a", "b", "c")
	def.Options = map[string]any{
		"scales": map[string]any{"y": map[string]any{"max": math.Inf(1), "min": math.Inf(-1)}},
	}
	checkY("无穷 min/max", def)

	def = lineChart("a", "b")
	def.Data.Datasets[0].Data = []any{-1e308, 1e308}
	checkY("溢出的数据范围", def)
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil, BuildOptions{Surface: stubSurface{}}); err == nil {
		t.Fatalf("空配置应返回错误")
	}
	if _, err := Build(config.New(nil, nil), BuildOptions{}); err == nil {
		t.Fatalf("缺少 Surface 应返回错误")
	}
}

func TestWriteDebugJSON(t *testing.T) {
	res := buildChart(t, lineChart("a", "b", "c"), BuildOptions{})
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("写入调试 JSON 失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	var decoded struct {
		Scales []struct {
			ID string `json:"id"`
		} `json:"scales"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("调试 JSON 无法解析: %v", err)
	}
	if len(decoded.Scales) != 2 {
		t.Fatalf("调试 JSON 应包含 2 个坐标轴，实际 %d", len(decoded.Scales))
	}
	if err := WriteDebugJSON(nil, path); err != nil {
		t.Fatalf("空结果应直接返回: %v", err)
	}
}
