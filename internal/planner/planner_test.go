package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
)

func date(y, m, d int) calendar.SolarDate {
	return calendar.SolarDate{Year: y, Month: m, Day: d}
}

func testRequest() Request {
	return Request{
		Title:       "学习日语",
		Description: "通过N3考试",
		Start:       date(2024, 2, 10),
		End:         date(2024, 3, 11),
		HoursPerDay: 1.5,
		Intensity:   3,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		title, desc string
		want        Category
	}{
		{"学习日语", "", CategoryLearning},
		{"Python 编程", "", CategoryLearning},
		{"马拉松", "", CategoryFitness},
		{"新产品上线", "", CategoryProject},
		{"写一本书", "", CategoryWriting},
		{"技能进阶", "", CategorySkill},
		{"整理房间", "", CategoryGeneral},
		{"每天", "跑步五公里", CategoryFitness},
		// learning is checked before skill
		{"提升英语", "", CategoryLearning},
	}
	for _, tt := range tests {
		if got := Classify(tt.title, tt.desc); got != tt.want {
			t.Errorf("Classify(%q, %q) = %s, want %s", tt.title, tt.desc, got, tt.want)
		}
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr bool
	}{
		{"valid", func(r *Request) {}, false},
		{"missing title", func(r *Request) { r.Title = "  " }, true},
		{"end equals start", func(r *Request) { r.End = r.Start }, true},
		{"end before start", func(r *Request) { r.End = date(2024, 1, 1) }, true},
		{"invalid start", func(r *Request) { r.Start = date(2023, 2, 30) }, true},
		{"end after 2100", func(r *Request) { r.End = date(2101, 1, 1) }, true},
		{"zero hours", func(r *Request) { r.HoursPerDay = 0 }, true},
		{"intensity too high", func(r *Request) { r.Intensity = 6 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(&req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Validate() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	plan, err := Generate(testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if plan.ID == "" {
		t.Error("plan ID is empty")
	}
	if plan.Category != CategoryLearning {
		t.Errorf("Category = %s, want learning", plan.Category)
	}
	if plan.TotalDays != 30 {
		t.Errorf("TotalDays = %d, want 30", plan.TotalDays)
	}
	if plan.TotalHours != 45 {
		t.Errorf("TotalHours = %v, want 45", plan.TotalHours)
	}
	if plan.LunarStart != "正月初一" || plan.LunarEnd != "二月初二" {
		t.Errorf("lunar range = %s - %s, want 正月初一 - 二月初二", plan.LunarStart, plan.LunarEnd)
	}

	type span struct {
		Start, End, Duration int
		From, To             calendar.SolarDate
		Tasks                int
	}
	var got []span
	for _, ph := range plan.Phases {
		got = append(got, span{ph.StartDay, ph.EndDay, ph.Duration, ph.Start, ph.End, len(ph.Tasks)})
	}
	want := []span{
		{0, 6, 7, date(2024, 2, 10), date(2024, 2, 16), 3},
		{7, 16, 10, date(2024, 2, 17), date(2024, 2, 26), 3},
		{17, 23, 7, date(2024, 2, 27), date(2024, 3, 4), 3},
		{24, 29, 6, date(2024, 3, 5), date(2024, 3, 10), 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("phases mismatch (-want +got):\n%s", diff)
	}

	first := plan.Phases[0].Tasks[0]
	if first.Text != "收集学习日语相关学习资料和教程" {
		t.Errorf("first task = %q", first.Text)
	}
	if diff := cmp.Diff([]string{"准备"}, first.Tags); diff != "" {
		t.Errorf("first task tags (-want +got):\n%s", diff)
	}

	var offsets []int
	for _, task := range plan.Phases[1].Tasks {
		offsets = append(offsets, task.DaysFromStart)
	}
	if diff := cmp.Diff([]int{0, 3, 6}, offsets); diff != "" {
		t.Errorf("task offsets (-want +got):\n%s", diff)
	}
}

func TestGenerate_GeneralUsesEightExecutionTasks(t *testing.T) {
	plan, err := Generate(Request{
		Title: "整理房间",
		Start: date(2024, 1, 1),
		End:   date(2024, 3, 1), // 60 days
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if plan.HoursPerDay != DefaultHoursPerDay || plan.Intensity != DefaultIntensity {
		t.Errorf("defaults = %v/%d, want %v/%d", plan.HoursPerDay, plan.Intensity, DefaultHoursPerDay, DefaultIntensity)
	}

	var durations []int
	for _, ph := range plan.Phases {
		durations = append(durations, ph.Duration)
	}
	if diff := cmp.Diff([]int{9, 30, 12, 9}, durations); diff != "" {
		t.Errorf("durations (-want +got):\n%s", diff)
	}

	exec := plan.Phases[1]
	if exec.Type != PhaseExecution || len(exec.Tasks) != 8 {
		t.Fatalf("execution phase = %s with %d tasks, want 8", exec.Type, len(exec.Tasks))
	}
	var offsets []int
	for _, task := range exec.Tasks {
		offsets = append(offsets, task.DaysFromStart)
	}
	if diff := cmp.Diff([]int{0, 3, 7, 11, 15, 18, 22, 26}, offsets); diff != "" {
		t.Errorf("offsets (-want +got):\n%s", diff)
	}
	if got := plan.Phases[0].Tasks[0].Text; got != "明确整理房间的具体目标" {
		t.Errorf("preparation task = %q", got)
	}
}

func TestGenerate_PhasesCoverRange(t *testing.T) {
	for _, days := range []int{1, 2, 5, 13, 29, 100, 365} {
		req := Request{Title: "写作", Start: date(2024, 1, 1)}
		req.End = req.Start.AddDays(days)
		plan, err := Generate(req)
		if err != nil {
			t.Fatalf("Generate(%d days) error = %v", days, err)
		}
		last := plan.Phases[len(plan.Phases)-1]
		if last.EndDay != days-1 {
			t.Errorf("%d days: last phase ends on day %d", days, last.EndDay)
		}
		for _, ph := range plan.Phases {
			if n := len(ph.Tasks); n < 3 || n > 8 {
				t.Errorf("%d days: phase %d has %d tasks", days, ph.Number, n)
			}
		}
	}
}

func TestGenerate_Invalid(t *testing.T) {
	_, err := Generate(Request{Title: "", Start: date(2024, 1, 2), End: date(2024, 1, 1)})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Generate() error = %v, want ErrInvalidRequest", err)
	}
	if !strings.Contains(err.Error(), "title is required") {
		t.Errorf("error %q does not mention the title", err)
	}
}

func TestToggleTask(t *testing.T) {
	plan, err := Generate(testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if plan.TotalTasks() != 12 {
		t.Fatalf("TotalTasks() = %d, want 12", plan.TotalTasks())
	}

	id := plan.Phases[2].Tasks[1].ID
	if done, ok := plan.ToggleTask(id); !ok || !done {
		t.Fatalf("ToggleTask() = %v, %v; want true, true", done, ok)
	}
	if plan.CompletedTasks() != 1 {
		t.Errorf("CompletedTasks() = %d, want 1", plan.CompletedTasks())
	}
	if done, _ := plan.ToggleTask(id); done {
		t.Error("second toggle left the task completed")
	}
	if _, ok := plan.ToggleTask("missing"); ok {
		t.Error("ToggleTask(missing) reported ok")
	}
}

func TestNormalize(t *testing.T) {
	p := &Plan{
		Title:       "写一本书",
		Start:       date(2024, 2, 10),
		End:         date(2024, 3, 11),
		HoursPerDay: 2,
		Phases: []Phase{
			{StartDay: 0, EndDay: 9, Tasks: []Task{{ID: "a", Text: "大纲"}}},
			{StartDay: 10, EndDay: 29},
		},
	}
	p.Normalize()

	if p.Category != CategoryWriting {
		t.Errorf("Category = %q, want %q", p.Category, CategoryWriting)
	}
	if p.TotalDays != 30 || p.TotalHours != 60 {
		t.Errorf("TotalDays/Hours = %d/%v, want 30/60", p.TotalDays, p.TotalHours)
	}
	if p.LunarStart != "正月初一" {
		t.Errorf("LunarStart = %q, want 正月初一", p.LunarStart)
	}
	if diff := cmp.Diff(date(2024, 2, 20), p.Phases[1].Start); diff != "" {
		t.Errorf("phase 2 start mismatch (-want +got):\n%s", diff)
	}
	if p.Phases[1].Number != 2 || p.Phases[1].Duration != 20 {
		t.Errorf("phase 2 = #%d/%d days, want #2/20 days", p.Phases[1].Number, p.Phases[1].Duration)
	}
	if p.Phases[0].Tasks[0].Tags == nil {
		t.Error("Tags left nil")
	}
}
