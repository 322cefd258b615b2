package canvasrenderer

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/chartcfg/font"
	"github.com/ByLCY/chartcfg/fonts"
	"github.com/ByLCY/chartcfg/label"
)

// faceCache 缓存已加载的字体族与已解析的字体串，渲染器与所有 Surface 共用。
type faceCache struct {
	mu       sync.Mutex
	families map[string]*canvas.FontFamily
	parsed   map[string]font.Font
}

func newFaceCache() *faceCache {
	return &faceCache{
		families: map[string]*canvas.FontFamily{},
		parsed:   map[string]font.Font{},
	}
}

// family 按内置字体族名（sans/mono）加载全部四种样式。
func (fc *faceCache) family(name string) (*canvas.FontFamily, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fam, ok := fc.families[name]; ok {
		return fam, nil
	}
	fam := canvas.NewFontFamily("chartcfg-" + name)
	for style, cs := range map[fonts.Style]canvas.FontStyle{
		fonts.Regular:    canvas.FontRegular,
		fonts.Bold:       canvas.FontBold,
		fonts.Italic:     canvas.FontRegular | canvas.FontItalic,
		fonts.BoldItalic: canvas.FontBold | canvas.FontItalic,
	} {
		data, err := fonts.Load(name, style)
		if err != nil {
			return nil, err
		}
		if err := fam.LoadFont(data, 0, cs); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
		}
	}
	fc.families[name] = fam
	return fam, nil
}

// font 解析 CSS 字体串；无法解析时退回 12px sans-serif。
func (fc *faceCache) font(s string) font.Font {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if f, ok := fc.parsed[s]; ok {
		return f
	}
	f, err := font.Parse(s)
	if err != nil {
		f = font.MustParse("12px sans-serif")
	}
	fc.parsed[s] = f
	return f
}

// face 创建字号为 f.Size（px → pt）的字体面。
func (fc *faceCache) face(f font.Font, col color.Color) (*canvas.FontFace, error) {
	fam, err := fc.family(fonts.Family(f.Primary()))
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if f.Bold() {
		style = canvas.FontBold
	}
	if f.Italic() {
		style |= canvas.FontItalic
	}
	return fam.Face(f.Size*font.PxToPt, col, style, canvas.FontNormal), nil
}

type surfaceState struct {
	m        canvas.Matrix
	font     font.Font
	fill     color.Color
	baseline string
	align    canvas.TextAlign
}

// Surface 在 tdewolff/canvas 上实现 label.Surface。
// 调用方使用 CSS 像素、y 轴向下的坐标，Surface 在输出时换算为毫米并翻转 y 轴。
// canvas 为空时只能测量文本，FillText 不产生任何输出。
type Surface struct {
	canvas *canvas.Canvas
	faces  *faceCache
	height float64 // 页面高度（mm）

	state surfaceState
	stack []surfaceState
	err   error
}

var _ label.Surface = (*Surface)(nil)

func newSurface(c *canvas.Canvas, faces *faceCache) *Surface {
	s := &Surface{
		canvas: c,
		faces:  faces,
		state: surfaceState{
			m:        canvas.Identity,
			font:     font.MustParse("12px sans-serif"),
			fill:     defaultColor,
			baseline: "alphabetic",
			align:    canvas.Left,
		},
	}
	if c != nil {
		_, s.height = c.Size()
	}
	return s
}

// NewMeasurer 返回只用于测量文本宽度的 Surface。
func NewMeasurer() *Surface { return newSurface(nil, newFaceCache()) }

// Err 返回绘制过程中遇到的第一个字体错误。
func (s *Surface) Err() error { return s.err }

func (s *Surface) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// MeasureText 返回文本在当前字体下的宽度（px）。
func (s *Surface) MeasureText(text string) label.TextMetrics {
	face, err := s.faces.face(s.state.font, s.state.fill)
	if err != nil {
		s.setErr(err)
		return label.TextMetrics{}
	}
	return label.TextMetrics{Width: face.TextWidth(text) * font.MmToPx}
}

// FillText 以当前变换、对齐方式与基线在 (x, y) 处绘制单行文本。
func (s *Surface) FillText(text string, x, y float64) {
	if s.canvas == nil || text == "" {
		return
	}
	face, err := s.faces.face(s.state.font, s.state.fill)
	if err != nil {
		s.setErr(err)
		return
	}
	y += s.baselineShift(face)

	// 局部文本坐标（mm，y 向上）→ 局部像素 → 页面像素 → 页面毫米（y 向上）
	k := font.PxToMm
	m := canvas.Identity.Translate(0, s.height).Scale(k, -k).
		Mul(s.state.m).
		Translate(x, y).
		Scale(1/k, -1/k)
	s.canvas.RenderText(canvas.NewTextLine(face, text, s.state.align), m)
}

// baselineShift 返回从 textBaseline 指定位置到字母基线的距离（px，向下为正）。
func (s *Surface) baselineShift(face *canvas.FontFace) float64 {
	metrics := face.Metrics()
	ascent := metrics.Ascent * font.MmToPx
	descent := math.Abs(metrics.Descent) * font.MmToPx
	switch s.state.baseline {
	case "middle":
		return (ascent - descent) / 2
	case "top", "hanging":
		return ascent
	case "bottom", "ideographic":
		return -descent
	}
	return 0
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) Translate(x, y float64) {
	s.state.m = s.state.m.Translate(x, y)
}

// Rotate 按弧度顺时针旋转（y 轴向下）。
func (s *Surface) Rotate(rad float64) {
	s.state.m = s.state.m.Rotate(rad * 180 / math.Pi)
}

func (s *Surface) SetFont(f string) {
	s.state.font = s.faces.font(f)
}

func (s *Surface) SetFillStyle(c string) {
	s.state.fill = parseColor(c, defaultColor)
}

func (s *Surface) SetTextBaseline(baseline string) {
	s.state.baseline = baseline
}

func (s *Surface) SetTextAlign(align string) {
	switch align {
	case "center":
		s.state.align = canvas.Center
	case "right", "end":
		s.state.align = canvas.Right
	default:
		s.state.align = canvas.Left
	}
}

// SetShadow 不支持阴影，调用被忽略。
func (s *Surface) SetShadow(float64, string) {}

// Depth 返回尚未 Restore 的 Save 次数。
func (s *Surface) Depth() int { return len(s.stack) }
