package canvasrenderer

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/chartcfg/font"
	"github.com/ByLCY/chartcfg/label"
	"github.com/ByLCY/chartcfg/layout"
	"github.com/ByLCY/chartcfg/renderer"
)

const defaultLineWidth = 1.0 // px

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	faces *faceCache
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a canvas-based PDF renderer backed by the bundled Go fonts.
func NewRenderer() *Renderer {
	return &Renderer{faces: newFaceCache()}
}

// Measurer 返回与渲染器共用字体缓存的测量表面，供布局计算使用。
func (r *Renderer) Measurer() *Surface {
	return newSurface(nil, r.faces)
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸无效: %gx%g", result.Width, result.Height)
	}

	w, h := result.Width*font.PxToMm, result.Height*font.PxToMm
	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(result.Meta.Title, "", "", "", result.Meta.Creator)

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	surface := newSurface(c, r.faces)

	for _, sc := range result.Scales {
		r.drawLines(ctx, sc.Lines)
	}
	for _, sc := range result.Scales {
		for _, l := range sc.Labels {
			drawLabel(surface, l)
		}
		if sc.Title != nil {
			drawLabel(surface, *sc.Title)
		}
	}
	if result.Title != nil {
		drawLabel(surface, *result.Title)
	}
	if err := surface.Err(); err != nil {
		return nil, err
	}

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLabel(s label.Surface, l layout.Label) {
	label.NewText(s, l.Font, l.Color, l.Lines...).Draw(l.X, l.Y, l.Rotation, l.Align, l.Anchor)
}

// drawLines 绘制直线列表，坐标与线宽由像素换算为毫米。
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultLineWidth
		}
		ctx.SetStrokeColor(parseColor(ln.Color, defaultColor))
		ctx.SetStrokeWidth(w * font.PxToMm)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo((ln.X2-ln.X1)*font.PxToMm, (ln.Y2-ln.Y1)*font.PxToMm)
		ctx.DrawPath(ln.X1*font.PxToMm, ln.Y1*font.PxToMm, p)
	}
}
