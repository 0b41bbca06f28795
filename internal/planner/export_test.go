package planner

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestExportMarkdown(t *testing.T) {
	plan, err := Generate(testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	plan.Phases[0].Tasks[0].Completed = true

	md := ExportMarkdown(plan)
	for _, want := range []string{
		"# 学习日语\n\n",
		"**时间范围**: 2024年2月10日 - 2024年3月11日\n\n",
		"**农历**: 正月初一 - 二月初二\n\n",
		"**总天数**: 30天\n\n",
		"**每日投入**: 1.5小时\n\n",
		"**描述**: 通过N3考试\n\n",
		"---\n\n",
		"## 阶段1: 基础入门\n\n*2/10 - 2/16 · 7天*\n\n建立知识框架，掌握基本概念\n\n",
		"- [x] 收集学习日语相关学习资料和教程\n",
		"- [ ] 制定详细的学习计划和时间表\n",
		"## 阶段4: 冲刺提升\n\n*3/5 - 3/10 · 6天*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestExportYAML(t *testing.T) {
	plan, err := Generate(testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	out, err := ExportYAML(plan)
	if err != nil {
		t.Fatalf("ExportYAML() error = %v", err)
	}

	var doc struct {
		Title  string `yaml:"title"`
		Start  struct{ Year, Month, Day int }
		Phases []struct {
			Title string `yaml:"title"`
			Tasks []struct {
				Text string `yaml:"text"`
			} `yaml:"tasks"`
		} `yaml:"phases"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if doc.Title != "学习日语" || len(doc.Phases) != 4 {
		t.Errorf("decoded %q with %d phases", doc.Title, len(doc.Phases))
	}
	if doc.Start.Year != 2024 || doc.Start.Month != 2 || doc.Start.Day != 10 {
		t.Errorf("start = %+v", doc.Start)
	}
	if got := doc.Phases[3].Title; got != "冲刺提升" {
		t.Errorf("phase 4 title = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
