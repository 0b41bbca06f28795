package planner

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
)

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

// ParseFormat accepts the format names and their common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ExportMarkdown renders the plan as a Markdown checklist.
func ExportMarkdown(p *Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**时间范围**: %s - %s\n\n", calendar.FormatSolarCN(p.Start), calendar.FormatSolarCN(p.End))
	if p.LunarStart != "" && p.LunarEnd != "" {
		fmt.Fprintf(&b, "**农历**: %s - %s\n\n", p.LunarStart, p.LunarEnd)
	}
	fmt.Fprintf(&b, "**总天数**: %d天\n\n", p.TotalDays)
	fmt.Fprintf(&b, "**每日投入**: %s小时\n\n", formatHours(p.HoursPerDay))
	if p.Description != "" {
		fmt.Fprintf(&b, "**描述**: %s\n\n", p.Description)
	}
	b.WriteString("---\n\n")

	for _, ph := range p.Phases {
		fmt.Fprintf(&b, "## 阶段%d: %s\n\n", ph.Number, ph.Title)
		fmt.Fprintf(&b, "*%d/%d - %d/%d · %d天*\n\n", ph.Start.Month, ph.Start.Day, ph.End.Month, ph.End.Day, ph.Duration)
		fmt.Fprintf(&b, "%s\n\n", ph.Description)
		for _, t := range ph.Tasks {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			fmt.Fprintf(&b, "- %s %s\n", box, t.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ExportYAML renders the plan as a YAML document.
func ExportYAML(p *Plan) ([]byte, error) {
	out, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal plan %s: %w", p.ID, err)
	}
	return out, nil
}

// Filename is the suggested download name for an export.
func Filename(p *Plan, f Format) string {
	ext := map[Format]string{FormatMarkdown: "md", FormatYAML: "yaml", FormatJSON: "json"}[f]
	return p.Title + "-计划." + ext
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
