package layout

import (
	"math"

	"github.com/ByLCY/chartcfg/font"
	"github.com/ByLCY/chartcfg/label"
	"github.com/ByLCY/chartcfg/options"
)

// scaleLayout 是单个坐标轴在布局过程中的中间状态。
type scaleLayout struct {
	id, axis, typ, position string
	node                    *options.Node
	radial                  bool
	offset, reverse         bool

	tickFont  font.Font
	tickColor string
	ticks     []Tick
	texts     []*label.Text // 与 ticks 一一对应；ticks.display 为 false 时为空
	title     *scaleTitle

	rotation float64 // 弧度
	anchor   string
	box      Area

	labels  []Label
	titleLb *Label
	lines   []Line
	skipped []int
}

type scaleTitle struct {
	text        *label.Text
	top, bottom float64
}

func (t *scaleTitle) thickness() float64 {
	if t == nil {
		return 0
	}
	return t.text.Height() + t.top + t.bottom
}

func (s *scaleLayout) horizontal() bool {
	return s.position == "top" || s.position == "bottom"
}

func (s *scaleLayout) result() ScaleBox {
	return ScaleBox{
		ID:       s.id,
		Axis:     s.axis,
		Type:     s.typ,
		Position: s.position,
		Box:      s.box,
		Rotation: -toDegrees(s.rotation),
		Ticks:    s.ticks,
		Labels:   s.labels,
		Title:    s.titleLb,
		Lines:    s.lines,
		Skipped:  s.skipped,
	}
}

// tickMark 返回刻度线长度，gridLines 关闭时为 0。
func (s *scaleLayout) tickMark() float64 {
	if !lookupBool(s.node, "gridLines.display", true) || !lookupBool(s.node, "gridLines.drawTicks", true) {
		return 0
	}
	return lookupFloat(s.node, "gridLines.tickMarkLength", 0)
}

func (s *scaleLayout) labelOffset() float64 {
	return s.tickMark() + lookupFloat(s.node, "ticks.padding", 0)
}

// fitHorizontal 计算横向坐标轴的标签旋转角度与所需高度。
// 标签放不下时按 asin((h+gap)/tickWidth) 旋转，并限制在 minRotation 与 maxRotation 之间。
func (b *builder) fitHorizontal(s *scaleLayout, width float64) float64 {
	minRot := lookupFloat(s.node, "ticks.minRotation", 0)
	maxRot := lookupFloat(s.node, "ticks.maxRotation", 50)
	if maxRot < minRot {
		maxRot = minRot
	}

	n := len(s.texts)
	rot := minRot
	if n > 1 {
		slots := float64(n - 1)
		if s.offset {
			slots = float64(n)
		}
		tickWidth := width / slots
		var widest, tallest float64
		for _, t := range s.texts {
			widest = math.Max(widest, t.Width())
			tallest = math.Max(tallest, t.Height())
		}
		if widest+labelGap > tickWidth && tickWidth > 0 {
			sin := math.Min((tallest+labelGap)/tickWidth, 1)
			rot = math.Max(rot, toDegrees(math.Asin(sin)))
		}
	}
	rot = math.Min(rot, maxRot)

	s.rotation = -toRadians(rot)
	switch {
	case s.position == "top" && rot == 0:
		s.anchor = "b"
	case s.position == "top":
		s.anchor = "lb"
	case rot == 0:
		s.anchor = "t"
	default:
		s.anchor = "rt"
	}

	var labels float64
	for _, t := range s.texts {
		p := t.Padding(s.rotation, s.anchor)
		if s.position == "top" {
			labels = math.Max(labels, p.Top)
		} else {
			labels = math.Max(labels, p.Bottom)
		}
	}
	if n == 0 {
		return s.tickMark() + s.title.thickness()
	}
	return s.labelOffset() + labels + s.title.thickness()
}

// fitVertical 计算纵向坐标轴所需宽度，纵轴标签不旋转。
func (b *builder) fitVertical(s *scaleLayout) float64 {
	s.rotation = 0
	s.anchor = "r"
	if s.position == "right" {
		s.anchor = "l"
	}
	var labels float64
	for _, t := range s.texts {
		p := t.Padding(0, s.anchor)
		labels = math.Max(labels, math.Max(p.Left, p.Right))
	}
	if len(s.texts) == 0 {
		return s.tickMark() + s.title.thickness()
	}
	return s.labelOffset() + labels + s.title.thickness()
}

// pixel 将第 i 个刻度映射到 [start, end] 上的像素位置。
func (s *scaleLayout) pixel(i int, start, end float64) float64 {
	if s.reverse {
		start, end = end, start
	}
	n := len(s.ticks)
	if n == 0 {
		return start
	}
	if !s.numeric() {
		if s.offset {
			return start + (float64(i)+0.5)*(end-start)/float64(n)
		}
		if n == 1 {
			return (start + end) / 2
		}
		return start + float64(i)*(end-start)/float64(n-1)
	}
	lo, hi := s.ticks[0].Value, s.ticks[n-1].Value
	if hi == lo {
		return (start + end) / 2
	}
	return start + (s.ticks[i].Value-lo)/(hi-lo)*(end-start)
}

func (s *scaleLayout) numeric() bool {
	return isNumericType(s.typ) || s.radial
}

func (b *builder) placeHorizontal(s *scaleLayout, area Area) {
	edge := s.box.Top
	dir := 1.0
	if s.position == "top" {
		edge = s.box.Bottom
		dir = -1
	}
	mark := s.tickMark()
	labelY := edge + dir*s.labelOffset()

	for i := range s.ticks {
		x := s.pixel(i, area.Left, area.Right)
		s.ticks[i].Pixel = x
		if mark > 0 {
			s.lines = append(s.lines, s.gridLine(i, x, edge, x, edge+dir*mark))
		}
		if i < len(s.texts) {
			s.labels = append(s.labels, *b.newLabel(s.texts[i], x, labelY, s.rotation, "center", s.anchor))
		}
	}
	if s.drawBorder() {
		s.lines = append(s.lines, s.gridLine(0, area.Left, edge, area.Right, edge))
	}
	b.autoSkip(s, true)

	if s.title != nil {
		x := (area.Left + area.Right) / 2
		if s.position == "top" {
			s.titleLb = b.newLabel(s.title.text, x, s.box.Top+s.title.top, 0, "center", "t")
		} else {
			s.titleLb = b.newLabel(s.title.text, x, s.box.Bottom-s.title.bottom, 0, "center", "b")
		}
	}
}

func (b *builder) placeVertical(s *scaleLayout, area Area) {
	edge := s.box.Right
	dir := -1.0
	if s.position == "right" {
		edge = s.box.Left
		dir = 1
	}
	mark := s.tickMark()
	labelX := edge + dir*s.labelOffset()

	for i := range s.ticks {
		// 数值自下而上增长
		y := s.pixel(i, area.Bottom, area.Top)
		s.ticks[i].Pixel = y
		if mark > 0 {
			s.lines = append(s.lines, s.gridLine(i, edge, y, edge+dir*mark, y))
		}
		if i < len(s.texts) {
			s.labels = append(s.labels, *b.newLabel(s.texts[i], labelX, y, 0, "center", s.anchor))
		}
	}
	if s.drawBorder() {
		s.lines = append(s.lines, s.gridLine(0, edge, area.Top, edge, area.Bottom))
	}
	b.autoSkip(s, false)

	if s.title != nil {
		y := (area.Top + area.Bottom) / 2
		if s.position == "right" {
			s.titleLb = b.newLabel(s.title.text, s.box.Right-s.title.top, y, math.Pi/2, "center", "r")
		} else {
			s.titleLb = b.newLabel(s.title.text, s.box.Left+s.title.top, y, -math.Pi/2, "center", "l")
		}
	}
}

// placeRadial 布局径向坐标轴：角度标签沿外圈分布，数值刻度沿竖直半径排列。
func (b *builder) placeRadial(s *scaleLayout, area Area) {
	cx := (area.Left + area.Right) / 2
	cy := (area.Top + area.Bottom) / 2

	var points []*label.Text
	if lookupBool(s.node, "pointLabels.display", true) {
		f := font.Resolve(child(s.node, "pointLabels.font"), b.root.Child("font"))
		color := lookupString(s.node, "pointLabels.color", b.color)
		for _, l := range b.cfg.Data().Labels {
			points = append(points, label.NewText(b.surface, f, color, label.Lines(l)...))
		}
	}
	var extra float64
	for _, t := range points {
		size := t.Size(0)
		extra = math.Max(extra, math.Max(size.W, size.H))
	}
	radius := math.Min(area.Width(), area.Height())/2 - extra - pointLabelGap
	if radius < 0 {
		radius = 0
	}

	n := len(b.cfg.Data().Labels)
	for i := 0; i < n; i++ {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		cos, sin := math.Cos(angle), math.Sin(angle)
		if lookupBool(s.node, "angleLines.display", true) {
			s.lines = append(s.lines, Line{
				X1:    cx,
				Y1:    cy,
				X2:    cx + radius*cos,
				Y2:    cy + radius*sin,
				Color: s.resolveString(child(s.node, "angleLines"), "color", i, "rgba(0,0,0,0.1)"),
				Width: s.resolveFloat(child(s.node, "angleLines"), "lineWidth", i, 1),
			})
		}
		if i < len(points) {
			r := radius + pointLabelGap
			s.labels = append(s.labels, *b.newLabel(points[i], cx+r*cos, cy+r*sin, 0, "center", radialAnchor(cos, sin)))
		}
	}

	for i := range s.ticks {
		y := s.pixel(i, cy, cy-radius)
		s.ticks[i].Pixel = y
		if i < len(s.texts) {
			s.labels = append(s.labels, *b.newLabel(s.texts[i], cx, y, 0, "center", ""))
		}
	}
}

// radialAnchor 根据标签所在方向选择锚点，使标签向圆外延伸。
func radialAnchor(cos, sin float64) string {
	const eps = 1e-6
	var code string
	switch {
	case cos > eps:
		code += "l"
	case cos < -eps:
		code += "r"
	}
	switch {
	case sin > eps:
		code += "t"
	case sin < -eps:
		code += "b"
	}
	return code
}

func (s *scaleLayout) drawBorder() bool {
	return lookupBool(s.node, "gridLines.display", true) && lookupBool(s.node, "gridLines.drawBorder", true)
}

// gridLine 生成一条线段，颜色与线宽支持按刻度序号取值的数组。
func (s *scaleLayout) gridLine(i int, x1, y1, x2, y2 float64) Line {
	grid := s.node.Child("gridLines")
	return Line{
		X1:    x1,
		Y1:    y1,
		X2:    x2,
		Y2:    y2,
		Color: s.resolveString(grid, "color", i, "rgba(0,0,0,0.1)"),
		Width: s.resolveFloat(grid, "lineWidth", i, 1),
	}
}

func (s *scaleLayout) resolveString(n *options.Node, key string, i int, def string) string {
	if v, ok := n.Resolve(key, i); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return def
}

func (s *scaleLayout) resolveFloat(n *options.Node, key string, i int, def float64) float64 {
	if v, ok := n.Resolve(key, i); ok {
		if f, ok := options.ToFloat(v); ok {
			return f
		}
	}
	return def
}

// autoSkip 依次保留不与上一个保留标签重叠的刻度标签。
func (b *builder) autoSkip(s *scaleLayout, horizontal bool) {
	if !lookupBool(s.node, "ticks.autoSkip", true) || len(s.labels) < 2 {
		return
	}
	gap := lookupFloat(s.node, "ticks.autoSkipPadding", 0)
	kept := s.labels[:1]
	last := s.labels[0].Extent
	for i := 1; i < len(s.labels); i++ {
		ext := s.labels[i].Extent
		if overlaps(last, ext, gap, horizontal) {
			if b.debug.Skipped {
				s.skipped = append(s.skipped, i)
			}
			continue
		}
		kept = append(kept, s.labels[i])
		last = ext
	}
	s.labels = kept
}

func overlaps(a, b Area, gap float64, horizontal bool) bool {
	if horizontal {
		return a.Left < b.Right+gap && b.Left < a.Right+gap
	}
	return a.Top < b.Bottom+gap && b.Top < a.Bottom+gap
}
