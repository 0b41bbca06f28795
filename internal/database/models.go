package database

import (
	"encoding/json"
	"time"

	"github.com/CatcatWinter/calendar-planner/internal/planner"
)

// PlanSummary is a plan list entry without its phases.
type PlanSummary struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Category       planner.Category `json:"category"`
	StartDate      string           `json:"start_date"` // YYYY-MM-DD
	EndDate        string           `json:"end_date"`
	TotalDays      int              `json:"total_days"`
	TotalTasks     int              `json:"total_tasks"`
	CompletedTasks int              `json:"completed_tasks"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Progress returns the completed share of tasks in [0, 1].
func (s PlanSummary) Progress() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks)
}

// StoreStats summarises the store for the health endpoint and tools.
type StoreStats struct {
	Plans          int `json:"plans"`
	Tasks          int `json:"tasks"`
	CompletedTasks int `json:"completed_tasks"`
}

// -----------------------------------------------------------------
// JSON column helpers
// -----------------------------------------------------------------

// MarshalTags converts task tags to the JSON stored in plan_tasks.tags.
func MarshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalTags parses the JSON stored in plan_tasks.tags.
func UnmarshalTags(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
