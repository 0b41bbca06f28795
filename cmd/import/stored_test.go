package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
	"github.com/CatcatWinter/calendar-planner/internal/database"
	"github.com/CatcatWinter/calendar-planner/internal/planner"
)

const browserExport = `[
  {
    "id": "lq3x9k2abc",
    "title": "学习日语",
    "description": "",
    "startDate": "2024-02-10T00:00:00.000Z",
    "endDate": "2024-03-11T00:00:00.000Z",
    "totalDays": 30,
    "totalHours": 45,
    "hoursPerDay": 1.5,
    "intensity": 3,
    "phases": [
      {
        "number": 1,
        "title": "基础入门",
        "description": "掌握基本概念",
        "startDay": 0,
        "endDay": 6,
        "duration": 7,
        "type": "foundation",
        "tasks": [
          {"id": "t1", "text": "学习基础", "tags": ["学习"], "completed": true, "daysFromStart": 0},
          {"id": "t2", "text": "做练习", "tags": [], "completed": false, "daysFromStart": 2}
        ]
      }
    ],
    "createdAt": "2024-02-09T12:30:00.000Z"
  }
]`

func TestParseStoredPlans(t *testing.T) {
	list, err := parseStoredPlans([]byte(browserExport))
	if err != nil {
		t.Fatalf("parseStoredPlans: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}

	one, err := parseStoredPlans([]byte(`{"id":"x","title":"a","startDate":"2024-01-01","endDate":"2024-01-05"}`))
	if err != nil {
		t.Fatalf("parseStoredPlans single: %v", err)
	}
	if len(one) != 1 || one[0].ID != "x" {
		t.Errorf("single = %+v", one)
	}

	if _, err := parseStoredPlans([]byte(`"nope"`)); err == nil {
		t.Error("expected error for a JSON string")
	}
}

func TestStoredPlanToPlan(t *testing.T) {
	list, err := parseStoredPlans([]byte(browserExport))
	if err != nil {
		t.Fatalf("parseStoredPlans: %v", err)
	}
	p, err := list[0].toPlan()
	if err != nil {
		t.Fatalf("toPlan: %v", err)
	}

	if p.Category != planner.CategoryLearning {
		t.Errorf("Category = %q, want learning", p.Category)
	}
	if diff := cmp.Diff(calendar.SolarDate{Year: 2024, Month: 2, Day: 10}, p.Start); diff != "" {
		t.Errorf("Start mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(calendar.SolarDate{Year: 2024, Month: 2, Day: 16}, p.Phases[0].End); diff != "" {
		t.Errorf("phase end mismatch (-want +got):\n%s", diff)
	}
	if p.LunarStart != "正月初一" {
		t.Errorf("LunarStart = %q, want 正月初一", p.LunarStart)
	}
	if want := time.Date(2024, 2, 9, 12, 30, 0, 0, time.UTC); !p.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt, want)
	}
	if p.CompletedTasks() != 1 {
		t.Errorf("CompletedTasks = %d, want 1", p.CompletedTasks())
	}
}

func TestStoredPlanToPlan_Invalid(t *testing.T) {
	tests := []struct {
		name string
		sp   storedPlan
	}{
		{"no title", storedPlan{StartDate: "2024-01-01", EndDate: "2024-01-02"}},
		{"bad start", storedPlan{Title: "a", StartDate: "soon", EndDate: "2024-01-02"}},
		{"bad end", storedPlan{Title: "a", StartDate: "2024-01-01", EndDate: "2024-13-40"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sp.toPlan(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImportPlans(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(database.Config{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1, ConnMaxLifetime: time.Hour}, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	list, err := parseStoredPlans([]byte(browserExport))
	if err != nil {
		t.Fatalf("parseStoredPlans: %v", err)
	}

	// Importing twice replaces rather than duplicates.
	for i := 0; i < 2; i++ {
		var stats importStats
		err := db.WithTx(ctx, func(tx *database.Tx) error {
			return importPlans(ctx, tx, list, log, &stats)
		})
		if err != nil {
			t.Fatalf("importPlans: %v", err)
		}
		if stats.Plans != 1 || stats.Tasks != 2 || stats.Completed != 1 {
			t.Errorf("stats = %+v", stats)
		}
	}

	got, err := db.GetPlan(ctx, "lq3x9k2abc")
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if got.Title != "学习日语" || len(got.Phases) != 1 {
		t.Errorf("plan = %q with %d phases", got.Title, len(got.Phases))
	}

	totals, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if totals.Plans != 1 || totals.Tasks != 2 {
		t.Errorf("totals = %+v, want 1 plan 2 tasks", totals)
	}
}
