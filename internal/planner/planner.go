// Package planner generates template-driven activity plans over a date
// range, split into phases and tasks.
package planner

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
)

// Defaults applied to a zero Request field.
const (
	DefaultHoursPerDay = 1.0
	DefaultIntensity   = 3
)

// ErrInvalidRequest wraps every Request validation failure.
var ErrInvalidRequest = errors.New("invalid plan request")

// Category is the kind of goal a plan is built for.
type Category string

const (
	CategoryLearning Category = "learning"
	CategoryFitness  Category = "fitness"
	CategoryProject  Category = "project"
	CategoryWriting  Category = "writing"
	CategorySkill    Category = "skill"
	CategoryGeneral  Category = "general"
)

// categoryKeywords is checked in order; the first group with a hit wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryLearning, []string{"学习", "课程", "考试", "认证", "语言", "日语", "英语", "编程"}},
	{CategoryFitness, []string{"健身", "减肥", "运动", "锻炼", "跑步", "马拉松"}},
	{CategoryProject, []string{"项目", "产品", "开发", "上线", "发布", "创业"}},
	{CategoryWriting, []string{"写作", "书", "论文", "文章", "博客"}},
	{CategorySkill, []string{"技能", "技术", "专业", "提升", "进阶"}},
}

// Classify picks the plan category from keywords in the title and
// description.
func Classify(title, description string) Category {
	text := strings.ToLower(title) + strings.ToLower(description)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.category
			}
		}
	}
	return CategoryGeneral
}

// Request holds the user input for plan generation.
type Request struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Start       calendar.SolarDate `json:"start"`
	End         calendar.SolarDate `json:"end"`
	HoursPerDay float64            `json:"hours_per_day"`
	Intensity   int                `json:"intensity"` // 1..5
}

// WithDefaults fills zero HoursPerDay and Intensity and trims the text
// fields.
func (r Request) WithDefaults() Request {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.HoursPerDay == 0 {
		r.HoursPerDay = DefaultHoursPerDay
	}
	if r.Intensity == 0 {
		r.Intensity = DefaultIntensity
	}
	return r
}

// Validate checks the request and joins every problem found.
func (r Request) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, fmt.Errorf("%w: title is required", ErrInvalidRequest))
	}
	if err := calendar.ValidateSolar(r.Start.Year, r.Start.Month, r.Start.Day); err != nil {
		errs = append(errs, fmt.Errorf("%w: start: %v", ErrInvalidRequest, err))
	}
	if err := calendar.ValidateSolar(r.End.Year, r.End.Month, r.End.Day); err != nil {
		errs = append(errs, fmt.Errorf("%w: end: %v", ErrInvalidRequest, err))
	}
	if !r.Start.Before(r.End) {
		errs = append(errs, fmt.Errorf("%w: end date must be after start date", ErrInvalidRequest))
	}
	for _, d := range []calendar.SolarDate{r.Start, r.End} {
		if d.Year < calendar.MinYear || d.Year > calendar.MaxYear {
			errs = append(errs, fmt.Errorf("%w: %s outside %d-%d", ErrInvalidRequest, d, calendar.MinYear, calendar.MaxYear))
		}
	}
	if r.HoursPerDay <= 0 || r.HoursPerDay > 24 {
		errs = append(errs, fmt.Errorf("%w: hours per day must be in (0, 24]", ErrInvalidRequest))
	}
	if r.Intensity < 1 || r.Intensity > 5 {
		errs = append(errs, fmt.Errorf("%w: intensity must be between 1 and 5", ErrInvalidRequest))
	}
	return errors.Join(errs...)
}

// Plan is a generated schedule. Phases are laid end to end from Start.
type Plan struct {
	ID          string             `json:"id" yaml:"id"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category           `json:"category" yaml:"category"`
	Start       calendar.SolarDate `json:"start" yaml:"start"`
	End         calendar.SolarDate `json:"end" yaml:"end"`
	LunarStart  string             `json:"lunar_start,omitempty" yaml:"lunar_start,omitempty"` // e.g. 正月初一
	LunarEnd    string             `json:"lunar_end,omitempty" yaml:"lunar_end,omitempty"`
	TotalDays   int                `json:"total_days" yaml:"total_days"`
	TotalHours  float64            `json:"total_hours" yaml:"total_hours"`
	HoursPerDay float64            `json:"hours_per_day" yaml:"hours_per_day"`
	Intensity   int                `json:"intensity" yaml:"intensity"`
	Phases      []Phase            `json:"phases" yaml:"phases"`
	CreatedAt   time.Time          `json:"created_at" yaml:"created_at"`
}

// Phase is one stage of a plan. StartDay and EndDay are offsets from the
// plan start, inclusive.
type Phase struct {
	Number      int                `json:"number" yaml:"number"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Type        PhaseType          `json:"type" yaml:"type"`
	StartDay    int                `json:"start_day" yaml:"start_day"`
	EndDay      int                `json:"end_day" yaml:"end_day"`
	Duration    int                `json:"duration" yaml:"duration"`
	Start       calendar.SolarDate `json:"start" yaml:"start"`
	End         calendar.SolarDate `json:"end" yaml:"end"`
	Tasks       []Task             `json:"tasks" yaml:"tasks"`
}

// Task is a single checklist item of a phase.
type Task struct {
	ID            string   `json:"id" yaml:"id"`
	Text          string   `json:"text" yaml:"text"`
	Tags          []string `json:"tags" yaml:"tags"`
	Completed     bool     `json:"completed" yaml:"completed"`
	DaysFromStart int      `json:"days_from_start" yaml:"days_from_start"` // relative to the phase start
}

// Generate builds a plan for the request. Zero HoursPerDay and Intensity
// take their defaults.
func Generate(req Request) (*Plan, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	totalDays := calendar.DaysBetween(req.Start, req.End)
	category := Classify(req.Title, req.Description)

	plan := &Plan{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Start:       req.Start,
		End:         req.End,
		LunarStart:  lunarLabel(req.Start),
		LunarEnd:    lunarLabel(req.End),
		TotalDays:   totalDays,
		TotalHours:  float64(totalDays) * req.HoursPerDay,
		HoursPerDay: req.HoursPerDay,
		Intensity:   req.Intensity,
		Phases:      buildPhases(phaseTemplates[category], totalDays),
		CreatedAt:   time.Now().UTC(),
	}

	for i := range plan.Phases {
		p := &plan.Phases[i]
		p.Start = req.Start.AddDays(p.StartDay)
		p.End = req.Start.AddDays(p.EndDay)
		p.Tasks = buildTasks(p.Type, p.Duration, req.Title)
	}
	return plan, nil
}

// buildPhases lays the phases end to end, each floor(total*ratio) days
// long, and stretches the last one to the final day.
func buildPhases(templates []phaseTemplate, totalDays int) []Phase {
	phases := make([]Phase, 0, len(templates))
	day := 0
	for i, tp := range templates {
		n := int(math.Floor(float64(totalDays) * tp.Ratio))
		phases = append(phases, Phase{
			Number:      i + 1,
			Title:       tp.Title,
			Description: tp.Description,
			Type:        tp.Type,
			StartDay:    day,
			EndDay:      day + n - 1,
			Duration:    n,
		})
		day += n
	}
	if len(phases) > 0 {
		last := &phases[len(phases)-1]
		last.EndDay = totalDays - 1
		last.Duration = last.EndDay - last.StartDay + 1
	}
	return phases
}

// taskCount is a third of the phase length, clamped to [3, 8].
func taskCount(duration int) int {
	return min(max(3, duration/3), 8)
}

func buildTasks(pt PhaseType, duration int, title string) []Task {
	list := tasksFor(pt)
	count := taskCount(duration)
	tasks := make([]Task, 0, count)
	for i := 0; i < count; i++ {
		tp := list[i%len(list)]
		tasks = append(tasks, Task{
			ID:            uuid.NewString(),
			Text:          strings.ReplaceAll(tp.Text, "{title}", title),
			Tags:          append([]string(nil), tp.Tags...),
			DaysFromStart: i * duration / count,
		})
	}
	return tasks
}

// lunarLabel renders a date as its lunar month and day, e.g. 正月初一.
// Dates outside the lunar range give an empty label.
func lunarLabel(d calendar.SolarDate) string {
	l, err := calendar.SolarToLunar(d.Year, d.Month, d.Day)
	if err != nil {
		return ""
	}
	return l.MonthName + l.DayName
}

// TotalTasks counts the tasks across all phases.
func (p *Plan) TotalTasks() int {
	n := 0
	for _, ph := range p.Phases {
		n += len(ph.Tasks)
	}
	return n
}

// CompletedTasks counts the completed tasks across all phases.
func (p *Plan) CompletedTasks() int {
	n := 0
	for _, ph := range p.Phases {
		for _, t := range ph.Tasks {
			if t.Completed {
				n++
			}
		}
	}
	return n
}

// FindTask returns a pointer to the task with the given id.
func (p *Plan) FindTask(id string) (*Task, bool) {
	for i := range p.Phases {
		for j := range p.Phases[i].Tasks {
			if p.Phases[i].Tasks[j].ID == id {
				return &p.Phases[i].Tasks[j], true
			}
		}
	}
	return nil, false
}

// ToggleTask flips the completion state of a task and reports the new
// state. ok is false when no task has the id.
func (p *Plan) ToggleTask(id string) (completed, ok bool) {
	t, ok := p.FindTask(id)
	if !ok {
		return false, false
	}
	t.Completed = !t.Completed
	return t.Completed, true
}

// Normalize fills the fields derivable from the rest of the plan: the
// category, lunar labels, totals and phase dates. It is used for plans
// that were not built by Generate.
func (p *Plan) Normalize() {
	if p.Category == "" {
		p.Category = Classify(p.Title, p.Description)
	}
	if p.TotalDays == 0 {
		p.TotalDays = calendar.DaysBetween(p.Start, p.End)
	}
	if p.TotalHours == 0 {
		p.TotalHours = float64(p.TotalDays) * p.HoursPerDay
	}
	if p.LunarStart == "" {
		p.LunarStart = lunarLabel(p.Start)
	}
	if p.LunarEnd == "" {
		p.LunarEnd = lunarLabel(p.End)
	}
	for i := range p.Phases {
		ph := &p.Phases[i]
		if ph.Number == 0 {
			ph.Number = i + 1
		}
		if ph.Duration == 0 {
			ph.Duration = ph.EndDay - ph.StartDay + 1
		}
		ph.Start = p.Start.AddDays(ph.StartDay)
		ph.End = p.Start.AddDays(ph.EndDay)
		for j := range ph.Tasks {
			if ph.Tasks[j].Tags == nil {
				ph.Tasks[j].Tags = []string{}
			}
		}
	}
}
