package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/chartcfg/config"
	"github.com/ByLCY/chartcfg/defaults"
	"github.com/ByLCY/chartcfg/layout"
	"github.com/ByLCY/chartcfg/options"
	"github.com/ByLCY/chartcfg/renderer"
	canvasrenderer "github.com/ByLCY/chartcfg/renderer/canvas"
)

var (
	defaultsPath string
	paths        []string

	outputPath string
	debugPath  string
	width      float64
	height     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chartcfg",
		Short: "图表配置解析与坐标轴排版",
	}
	rootCmd.PersistentFlags().StringVar(&defaultsPath, "defaults", "", "覆盖内置默认值的 YAML 文件")

	resolveCmd := &cobra.Command{
		Use:   "resolve <chart.yaml>",
		Short: "输出解析后的坐标轴配置（JSON）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resolve(args[0], paths, cmd.OutOrStdout())
		},
	}
	resolveCmd.Flags().StringArrayVarP(&paths, "path", "p", nil, "只输出指定的选项路径，例如 scales.x.ticks.color")

	renderCmd := &cobra.Command{
		Use:   "render <chart.yaml>",
		Short: "排版坐标轴并输出 PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(args[0], outputPath, debugPath, newRenderer()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s\n", outputPath)
			return nil
		},
	}
	addRenderFlags(renderCmd.Flags())

	rootCmd.AddCommand(resolveCmd, renderCmd)
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("执行失败: %v", err)
	}
}

func addRenderFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&outputPath, "out", "o", "output/chart.pdf", "PDF 输出路径")
	fs.StringVar(&debugPath, "debug", "", "布局调试 JSON 输出路径")
	fs.Float64Var(&width, "width", 600, "画布宽度（px）")
	fs.Float64Var(&height, "height", 400, "画布高度（px）")
}

func newRenderer() renderer.Renderer { return canvasrenderer.NewRenderer() }

// registry 返回内置默认值，指定 --defaults 时合并覆盖项。
func registry() (*defaults.Registry, error) {
	reg := defaults.Builtin()
	if defaultsPath == "" {
		return reg, nil
	}
	data, err := os.ReadFile(defaultsPath)
	if err != nil {
		return nil, fmt.Errorf("读取默认值文件 %s 失败: %w", defaultsPath, err)
	}
	var overrides map[string]any
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("解析默认值文件失败: %w", err)
	}
	return reg.WithOverrides(overrides)
}

func loadConfig(inputPath string) (*config.Config, error) {
	reg, err := registry()
	if err != nil {
		return nil, err
	}
	def, err := config.LoadFile(inputPath)
	if err != nil {
		return nil, err
	}
	return config.New(def, reg), nil
}

// resolve 输出解析结果；未指定路径时输出全部坐标轴。
func resolve(inputPath string, paths []string, w io.Writer) error {
	cfg, err := loadConfig(inputPath)
	if err != nil {
		return err
	}
	out := map[string]any{}
	if len(paths) == 0 {
		scales := map[string]any{}
		for _, id := range cfg.ScaleIDs() {
			scales[id] = cfg.Scale(id).Map()
		}
		out["type"] = cfg.Type()
		out["indexAxis"] = cfg.IndexAxis()
		out["scales"] = scales
	} else {
		for _, p := range paths {
			v, ok := cfg.Options().Lookup(p)
			if !ok {
				out[p] = nil
				continue
			}
			if n, isNode := v.(*options.Node); isNode {
				v = n.Map()
			}
			out[p] = v
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// run 串联解析、布局与渲染。
func run(inputPath, outputPath, debugPath string, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	cfg, err := loadConfig(inputPath)
	if err != nil {
		return err
	}

	opts := layout.BuildOptions{Width: width, Height: height}
	if m, ok := r.(*canvasrenderer.Renderer); ok {
		opts.Surface = m.Measurer()
	} else {
		opts.Surface = canvasrenderer.NewMeasurer()
	}
	result, err := layout.Build(cfg, opts)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := layout.WriteDebugJSON(result, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}
