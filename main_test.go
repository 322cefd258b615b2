package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const lineChart = `type: line
data:
  labels: [Jan, Feb, Mar]
  datasets:
    - label: Sales
      data: [3, 7, 4]
options:
  scales:
    y:
      ticks:
        color: "#333"
`

func writeChart(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(lineChart), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}
	return path
}

func TestResolveAllScales(t *testing.T) {
	var buf bytes.Buffer
	if err := resolve(writeChart(t), nil, &buf); err != nil {
		t.Fatalf("resolve 失败: %v", err)
	}
	var out struct {
		Type      string                    `json:"type"`
		IndexAxis string                    `json:"indexAxis"`
		Scales    map[string]map[string]any `json:"scales"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("输出不是合法 JSON: %v\n%s", err, buf.String())
	}
	if out.Type != "line" || out.IndexAxis != "x" {
		t.Fatalf("图表类型或索引轴错误: %+v", out)
	}
	if out.Scales["x"]["type"] != "category" || out.Scales["y"]["type"] != "linear" {
		t.Fatalf("坐标轴类型错误: %+v", out.Scales)
	}
}

func TestResolvePaths(t *testing.T) {
	var buf bytes.Buffer
	paths := []string{"scales.y.ticks.color", "scales.x.ticks.color", "no.such.path"}
	if err := resolve(writeChart(t), paths, &buf); err != nil {
		t.Fatalf("resolve 失败: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("输出不是合法 JSON: %v", err)
	}
	if out["scales.y.ticks.color"] != "#333" || out["scales.x.ticks.color"] != "#666" {
		t.Fatalf("路径解析结果错误: %+v", out)
	}
	if v, ok := out["no.such.path"]; !ok || v != nil {
		t.Fatalf("不存在的路径应输出 null: %+v", out)
	}
}

func TestResolveWithDefaultsOverride(t *testing.T) {
	dir := t.TempDir()
	overrides := filepath.Join(dir, "defaults.yaml")
	if err := os.WriteFile(overrides, []byte("scale:\n  ticks:\n    color: \"#000\"\n"), 0o644); err != nil {
		t.Fatalf("写入默认值文件失败: %v", err)
	}
	defaultsPath = overrides
	defer func() { defaultsPath = "" }()

	var buf bytes.Buffer
	if err := resolve(writeChart(t), []string{"scales.x.ticks.color"}, &buf); err != nil {
		t.Fatalf("resolve 失败: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("输出不是合法 JSON: %v", err)
	}
	if out["scales.x.ticks.color"] != "#000" {
		t.Fatalf("默认值覆盖未生效: %+v", out)
	}
}

func TestRunWritesPDF(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "chart.pdf")
	debug := filepath.Join(dir, "layout.json")
	width, height = 500, 300
	if err := run(writeChart(t), out, debug, nil); err == nil {
		t.Fatalf("renderer 为空时应返回错误")
	}
	if err := run(writeChart(t), out, debug, newRenderer()); err != nil {
		t.Fatalf("run 失败: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("未生成 PDF: %v", err)
	}
	if _, err := os.Stat(debug); err != nil {
		t.Fatalf("未生成调试 JSON: %v", err)
	}
}
