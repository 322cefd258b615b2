package layout

import "github.com/ByLCY/chartcfg/font"

// 该文件定义布局结果，供布局计算、渲染与调试 JSON 共用。
// 所有坐标均为 CSS 像素，原点在左上角，y 轴向下。

// Result 保存一次图表布局的结果。
type Result struct {
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	ChartArea Area         `json:"chartArea"`
	Title     *Label       `json:"title,omitempty"`
	Scales    []ScaleBox   `json:"scales"`
	Meta      DocumentMeta `json:"meta"`
}

// Area 描述一个矩形区域。
type Area struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width 返回区域宽度。
func (a Area) Width() float64 { return a.Right - a.Left }

// Height 返回区域高度。
func (a Area) Height() float64 { return a.Bottom - a.Top }

// ScaleBox 是一个坐标轴排好版后的全部元素。
type ScaleBox struct {
	ID       string  `json:"id"`
	Axis     string  `json:"axis"`
	Type     string  `json:"type"`
	Position string  `json:"position"`
	Box      Area    `json:"box"`
	Rotation float64 `json:"rotation"` // 刻度标签旋转角度（度）
	Ticks    []Tick  `json:"ticks"`
	Labels   []Label `json:"labels"`
	Title    *Label  `json:"title,omitempty"`
	Lines    []Line  `json:"lines,omitempty"`
	// Skipped 记录因 autoSkip 被隐藏的刻度序号，仅在 Debug.Skipped 打开时填充。
	Skipped []int `json:"skipped,omitempty"`
}

// Tick 表示一个刻度。
type Tick struct {
	Value float64  `json:"value"`
	Label []string `json:"label"`
	Pixel float64  `json:"pixel"`
}

// Label 是一个已确定锚点、旋转与对齐方式的文本标签。
type Label struct {
	Lines    []string  `json:"lines"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Rotation float64   `json:"rotation"` // 弧度
	Align    string    `json:"align"`
	Anchor   string    `json:"anchor"`
	Font     font.Font `json:"font"`
	Color    string    `json:"color"`
	// Extent 是标签旋转后占据的矩形，用于碰撞检测与调试。
	Extent Area `json:"extent"`
}

// Line 表示一条线段（轴线或刻度线）。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// DocumentMeta 保存输出文档的元信息。
type DocumentMeta struct {
	Title   string `json:"title"`
	Creator string `json:"creator"`
}
