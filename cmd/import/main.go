// Command import loads plans exported from the browser planner into the
// SQLite database.
//
// Usage:
//
//	go run ./cmd/import -json savedPlans.json -db data/planner.db
//
// The file holds either one plan or an array of plans in the browser's
// storage shape (camelCase keys, ISO timestamps). All plans are written in
// a single transaction; plans whose ID already exists are replaced.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/CatcatWinter/calendar-planner/internal/database"
	"github.com/CatcatWinter/calendar-planner/internal/logger"
)

func main() {
	jsonPath := flag.String("json", "savedPlans.json", "Path to exported plans JSON")
	dbPath := flag.String("db", "data/planner.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text")

	if err := run(*jsonPath, *dbPath, log); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("import complete")
}

func run(jsonPath, dbPath string, log *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse JSON
	// =========================================================================
	log.Info("reading JSON file", slog.String("path", jsonPath))

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("read JSON file: %w", err)
	}

	stored, err := parseStoredPlans(data)
	if err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	log.Info("parsed JSON", slog.Int("plans", len(stored)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	log.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import plans in a transaction
	// =========================================================================
	var stats importStats
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return importPlans(ctx, tx, stored, log, &stats)
	})
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	totals, err := db.Stats(ctx)
	if err != nil {
		return fmt.Errorf("query stats: %w", err)
	}

	elapsed := time.Since(startTime)
	log.Info("import verified",
		slog.Int("plans_in_db", totals.Plans),
		slog.Int("tasks_in_db", totals.Tasks),
		slog.Duration("elapsed", elapsed),
	)

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Plans imported:      %d\n", stats.Plans)
	fmt.Printf("Phases imported:     %d\n", stats.Phases)
	fmt.Printf("Tasks imported:      %d\n", stats.Tasks)
	fmt.Printf("Tasks completed:     %d\n", stats.Completed)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// importStats tracks import statistics.
type importStats struct {
	Plans     int
	Phases    int
	Tasks     int
	Completed int
}

func importPlans(ctx context.Context, tx *database.Tx, stored []storedPlan, log *slog.Logger, stats *importStats) error {
	for i, sp := range stored {
		plan, err := sp.toPlan()
		if err != nil {
			return fmt.Errorf("plan %d (%s): %w", i+1, sp.Title, err)
		}
		if err := tx.SavePlan(ctx, plan); err != nil {
			return fmt.Errorf("save plan %d (%s): %w", i+1, sp.Title, err)
		}

		stats.Plans++
		stats.Phases += len(plan.Phases)
		stats.Tasks += plan.TotalTasks()
		stats.Completed += plan.CompletedTasks()

		log.Debug("imported plan",
			slog.String("id", plan.ID),
			slog.String("title", plan.Title),
			slog.String("category", string(plan.Category)),
		)
	}
	return nil
}

// parseStoredPlans accepts a single plan object or an array of them.
func parseStoredPlans(data []byte) ([]storedPlan, error) {
	var list []storedPlan
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var one storedPlan
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []storedPlan{one}, nil
}
