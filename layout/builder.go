package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/chartcfg/binding"
	"github.com/ByLCY/chartcfg/config"
	"github.com/ByLCY/chartcfg/font"
	"github.com/ByLCY/chartcfg/label"
	"github.com/ByLCY/chartcfg/options"
)

const (
	defaultWidth  = 600.0
	defaultHeight = 400.0
	labelGap      = 6.0
	pointLabelGap = 5.0
	titlePadding  = 10.0
)

// Build 根据解析后的图表配置计算坐标轴、刻度标签与标题的位置。
// 文字尺寸通过 opts.Surface 测量，结果可直接交给渲染器。
func Build(cfg *config.Config, opts BuildOptions) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("layout: 图表配置为空")
	}
	if opts.Surface == nil {
		return nil, fmt.Errorf("layout: 缺少绘图表面 Surface")
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	root := cfg.Options()
	padding := lookupFloat(root, "layout.padding", 0)
	if opts.Padding != nil {
		padding = *opts.Padding
	}

	b := &builder{
		cfg:     cfg,
		surface: opts.Surface,
		root:    root,
		color:   root.String("color", "#666"),
		debug:   opts.Debug,
	}

	res := &Result{
		Width:  width,
		Height: height,
		Meta:   DocumentMeta{Creator: "chartcfg"},
	}
	area := Area{Left: padding, Top: padding, Right: width - padding, Bottom: height - padding}
	area = b.placeChartTitle(res, area)

	scales := b.collectScales()

	// 先确定纵向坐标轴的宽度，再用剩余宽度计算横向坐标轴（标签旋转依赖可用宽度）。
	for _, s := range scales {
		if s.radial || s.horizontal() {
			continue
		}
		th := b.fitVertical(s)
		switch s.position {
		case "right":
			s.box = Area{Left: area.Right - th, Right: area.Right}
			area.Right -= th
		default:
			s.box = Area{Left: area.Left, Right: area.Left + th}
			area.Left += th
		}
	}
	for _, s := range scales {
		if s.radial || !s.horizontal() {
			continue
		}
		th := b.fitHorizontal(s, area.Width())
		switch s.position {
		case "top":
			s.box = Area{Top: area.Top, Bottom: area.Top + th}
			area.Top += th
		default:
			s.box = Area{Top: area.Bottom - th, Bottom: area.Bottom}
			area.Bottom -= th
		}
	}

	res.ChartArea = area
	for _, s := range scales {
		switch {
		case s.radial:
			s.box = area
			b.placeRadial(s, area)
		case s.horizontal():
			s.box.Left, s.box.Right = area.Left, area.Right
			b.placeHorizontal(s, area)
		default:
			s.box.Top, s.box.Bottom = area.Top, area.Bottom
			b.placeVertical(s, area)
		}
		res.Scales = append(res.Scales, s.result())
	}
	return res, nil
}

type builder struct {
	cfg     *config.Config
	surface label.Surface
	root    *options.Node
	color   string
	debug   DebugOptions
}

// placeChartTitle 处理 plugins.title，占用图表顶部空间。
func (b *builder) placeChartTitle(res *Result, area Area) Area {
	node := child(b.root, "plugins.title")
	if node == nil || !node.Bool("display", false) {
		return area
	}
	lines := b.interpolate(label.Lines(node.Value("text")))
	if len(lines) == 0 {
		return area
	}
	f := font.Resolve(node.Child("font"), b.root.Child("font"))
	pad := node.Float("padding", titlePadding)
	text := label.NewText(b.surface, f, node.String("color", b.color), lines...)

	x := (area.Left + area.Right) / 2
	y := area.Top + pad
	res.Title = b.newLabel(text, x, y, 0, "center", "t")
	res.Meta.Title = strings.Join(lines, " ")
	area.Top += text.Height() + 2*pad
	return area
}

func (b *builder) collectScales() []*scaleLayout {
	var out []*scaleLayout
	for _, id := range b.cfg.ScaleIDs() {
		node := b.cfg.Scale(id)
		if node == nil || !node.Bool("display", true) {
			continue
		}
		s := &scaleLayout{
			id:       id,
			node:     node,
			axis:     node.String("axis", ""),
			typ:      node.String("type", ""),
			position: node.String("position", ""),
			offset:   node.Bool("offset", false),
			reverse:  node.Bool("reverse", false),
		}
		s.radial = s.axis == "r" || s.typ == "radialLinear"
		if s.position == "" || (!s.radial && s.position == "chartArea") {
			s.position = defaultPosition(s.axis)
		}
		s.tickFont = font.Resolve(child(node, "ticks.font"), b.root.Child("font"))
		s.tickColor = lookupString(node, "ticks.color", b.color)
		s.ticks = b.buildTicks(s)
		if lookupBool(node, "ticks.display", true) {
			for _, t := range s.ticks {
				s.texts = append(s.texts, label.NewText(b.surface, s.tickFont, s.tickColor, t.Label...))
			}
		}
		s.title = b.scaleTitle(node)
		out = append(out, s)
	}
	return out
}

func defaultPosition(axis string) string {
	switch axis {
	case "y":
		return "left"
	case "r":
		return "chartArea"
	default:
		return "bottom"
	}
}

// scaleTitle 解析坐标轴标题；title.text 支持 ${path} 引用配置中的值。
func (b *builder) scaleTitle(node *options.Node) *scaleTitle {
	title := node.Child("title")
	if title == nil || !title.Bool("display", false) {
		return nil
	}
	lines := b.interpolate(label.Lines(title.Value("text")))
	if len(lines) == 0 {
		return nil
	}
	f := font.Resolve(title.Child("font"), b.root.Child("font"))
	top, bottom := paddingTB(title.Value("padding"))
	return &scaleTitle{
		text:   label.NewText(b.surface, f, title.String("color", b.color), lines...),
		top:    top,
		bottom: bottom,
	}
}

func (b *builder) interpolate(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, binding.Interpolate(line, b.root))
	}
	return out
}

func (b *builder) newLabel(t *label.Text, x, y, rad float64, align, anchor string) *Label {
	p := t.Padding(rad, anchor)
	return &Label{
		Lines:    t.Lines(),
		X:        x,
		Y:        y,
		Rotation: rad,
		Align:    align,
		Anchor:   anchor,
		Font:     t.Font(),
		Color:    t.Color(),
		Extent: Area{
			Left:   x - p.Left,
			Top:    y - p.Top,
			Right:  x + p.Right,
			Bottom: y + p.Bottom,
		},
	}
}

// paddingTB 解析 padding：数字表示上下相同，映射读取 top/bottom。
func paddingTB(v any) (float64, float64) {
	switch p := v.(type) {
	case *options.Node:
		return p.Float("top", 0), p.Float("bottom", 0)
	default:
		if f, ok := options.ToFloat(v); ok {
			return f, f
		}
		return 0, 0
	}
}

func child(n *options.Node, path string) *options.Node {
	v, ok := n.Lookup(path)
	if !ok {
		return nil
	}
	c, _ := v.(*options.Node)
	return c
}

func lookupFloat(n *options.Node, path string, def float64) float64 {
	v, ok := n.Lookup(path)
	if !ok {
		return def
	}
	if f, ok := options.ToFloat(v); ok {
		return f
	}
	return def
}

func lookupBool(n *options.Node, path string, def bool) bool {
	if v, ok := n.Lookup(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func lookupString(n *options.Node, path string, def string) string {
	if v, ok := n.Lookup(path); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
