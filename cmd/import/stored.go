package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
	"github.com/CatcatWinter/calendar-planner/internal/planner"
)

// storedPlan is a plan as the browser planner keeps it in localStorage.
type storedPlan struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	TotalDays   int           `json:"totalDays"`
	TotalHours  float64       `json:"totalHours"`
	HoursPerDay float64       `json:"hoursPerDay"`
	Intensity   int           `json:"intensity"`
	Phases      []storedPhase `json:"phases"`
	CreatedAt   string        `json:"createdAt"`
}

type storedPhase struct {
	Number      int          `json:"number"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        string       `json:"type"`
	StartDay    int          `json:"startDay"`
	EndDay      int          `json:"endDay"`
	Duration    int          `json:"duration"`
	Tasks       []storedTask `json:"tasks"`
}

type storedTask struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Tags          []string `json:"tags"`
	Completed     bool     `json:"completed"`
	DaysFromStart int      `json:"daysFromStart"`
}

// storedDate reads the calendar date of an ISO timestamp or a bare
// YYYY-MM-DD string.
func storedDate(s string) (calendar.SolarDate, error) {
	if len(s) < 10 {
		return calendar.SolarDate{}, fmt.Errorf("invalid date %q", s)
	}
	return calendar.ParseDate(s[:10])
}

func (sp storedPlan) toPlan() (*planner.Plan, error) {
	if strings.TrimSpace(sp.Title) == "" {
		return nil, errors.New("missing title")
	}
	start, err := storedDate(sp.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := storedDate(sp.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	intensity := sp.Intensity
	if intensity == 0 {
		intensity = planner.DefaultIntensity
	}
	hours := sp.HoursPerDay
	if hours == 0 {
		hours = planner.DefaultHoursPerDay
	}

	p := &planner.Plan{
		ID:          sp.ID,
		Title:       sp.Title,
		Description: sp.Description,
		Start:       start,
		End:         end,
		TotalDays:   sp.TotalDays,
		TotalHours:  sp.TotalHours,
		HoursPerDay: hours,
		Intensity:   intensity,
		CreatedAt:   time.Now().UTC(),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if t, err := time.Parse(time.RFC3339, sp.CreatedAt); err == nil {
		p.CreatedAt = t.UTC()
	}

	for _, sph := range sp.Phases {
		ph := planner.Phase{
			Number:      sph.Number,
			Title:       sph.Title,
			Description: sph.Description,
			Type:        planner.PhaseType(sph.Type),
			StartDay:    sph.StartDay,
			EndDay:      sph.EndDay,
			Duration:    sph.Duration,
		}
		for _, st := range sph.Tasks {
			id := st.ID
			if id == "" {
				id = uuid.NewString()
			}
			ph.Tasks = append(ph.Tasks, planner.Task{
				ID:            id,
				Text:          st.Text,
				Tags:          st.Tags,
				Completed:     st.Completed,
				DaysFromStart: st.DaysFromStart,
			})
		}
		p.Phases = append(p.Phases, ph)
	}

	p.Normalize()
	return p, nil
}
