package layout

import "github.com/ByLCY/chartcfg/label"

// BuildOptions 配置布局阶段所需的依赖，例如用于测量文字的绘图表面。
type BuildOptions struct {
	Surface label.Surface
	Width   float64 // 画布宽度（px），<=0 时使用 600
	Height  float64 // 画布高度（px），<=0 时使用 400
	// Padding 覆盖 options.layout.padding，为 nil 时读取配置。
	Padding *float64
	Debug   DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	Skipped bool // 在结果中记录被 autoSkip 隐藏的刻度
}
