package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
	"github.com/CatcatWinter/calendar-planner/internal/planner"
)

// querier is satisfied by both *DB and *Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	// RFC3339 is what we write; datetime('now') defaults use the SQLite format
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

// timestampLayout has fixed-width fractions so stored values sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseDate(column, s string) (calendar.SolarDate, error) {
	d, err := calendar.ParseDate(s)
	if err != nil {
		return calendar.SolarDate{}, fmt.Errorf("parse %s %q: %w", column, s, err)
	}
	return d, nil
}

// =============================================================================
// Plan Writes
// =============================================================================

// SavePlan inserts the plan or replaces a stored plan with the same ID,
// including all phases and tasks.
func (db *DB) SavePlan(ctx context.Context, p *planner.Plan) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		return tx.SavePlan(ctx, p)
	})
}

// SavePlan is the transactional form of DB.SavePlan.
func (tx *Tx) SavePlan(ctx context.Context, p *planner.Plan) error {
	return savePlan(ctx, tx, p)
}

func savePlan(ctx context.Context, q querier, p *planner.Plan) error {
	now := formatTimestamp(time.Now())
	created := now
	if !p.CreatedAt.IsZero() {
		created = formatTimestamp(p.CreatedAt)
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO plans (
			id, title, description, category, start_date, end_date,
			lunar_start, lunar_end, total_days, total_hours, hours_per_day,
			intensity, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			lunar_start = excluded.lunar_start,
			lunar_end = excluded.lunar_end,
			total_days = excluded.total_days,
			total_hours = excluded.total_hours,
			hours_per_day = excluded.hours_per_day,
			intensity = excluded.intensity,
			updated_at = excluded.updated_at
	`,
		p.ID, p.Title, p.Description, string(p.Category), p.Start.String(), p.End.String(),
		p.LunarStart, p.LunarEnd, p.TotalDays, p.TotalHours, p.HoursPerDay,
		p.Intensity, created, now,
	)
	if err != nil {
		return fmt.Errorf("upsert plan %s: %w", p.ID, err)
	}

	completedAt, err := taskCompletionTimes(ctx, q, p.ID)
	if err != nil {
		return err
	}

	// Children are replaced wholesale; phases and tasks have no identity
	// outside their plan.
	if _, err := q.ExecContext(ctx, "DELETE FROM plan_tasks WHERE plan_id = ?", p.ID); err != nil {
		return fmt.Errorf("clear tasks of plan %s: %w", p.ID, err)
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM plan_phases WHERE plan_id = ?", p.ID); err != nil {
		return fmt.Errorf("clear phases of plan %s: %w", p.ID, err)
	}

	for _, ph := range p.Phases {
		_, err := q.ExecContext(ctx, `
			INSERT INTO plan_phases (
				plan_id, number, title, description, phase_type,
				start_day, end_day, duration, start_date, end_date
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			p.ID, ph.Number, ph.Title, ph.Description, string(ph.Type),
			ph.StartDay, ph.EndDay, ph.Duration, ph.Start.String(), ph.End.String(),
		)
		if err != nil {
			return fmt.Errorf("insert phase %d of plan %s: %w", ph.Number, p.ID, err)
		}

		for i, task := range ph.Tasks {
			tags, err := MarshalTags(task.Tags)
			if err != nil {
				return fmt.Errorf("marshal tags of task %s: %w", task.ID, err)
			}
			var doneAt sql.NullString
			if task.Completed {
				doneAt = sql.NullString{String: now, Valid: true}
				if prev, ok := completedAt[task.ID]; ok {
					doneAt.String = prev
				}
			}
			_, err = q.ExecContext(ctx, `
				INSERT INTO plan_tasks (
					id, plan_id, phase_number, position, text, tags,
					completed, days_from_start, completed_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				task.ID, p.ID, ph.Number, i, task.Text, tags,
				task.Completed, task.DaysFromStart, doneAt,
			)
			if err != nil {
				return fmt.Errorf("insert task %s of plan %s: %w", task.ID, p.ID, err)
			}
		}
	}
	return nil
}

// taskCompletionTimes maps the IDs of a stored plan's completed tasks to
// their completed_at values.
func taskCompletionTimes(ctx context.Context, q querier, planID string) (map[string]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, completed_at FROM plan_tasks WHERE plan_id = ? AND completed_at IS NOT NULL",
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("query completion times of plan %s: %w", planID, err)
	}
	defer rows.Close()

	times := make(map[string]string)
	for rows.Next() {
		var id, at string
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("scan completion time: %w", err)
		}
		times[id] = at
	}
	return times, rows.Err()
}

// DeletePlan removes a plan with its phases and tasks.
// Returns ErrNotFound if no plan has the ID.
func (db *DB) DeletePlan(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTaskCompleted marks a task of a plan completed or not.
// Returns ErrNotFound if the plan has no such task.
func (db *DB) SetTaskCompleted(ctx context.Context, planID, taskID string, completed bool) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		return setTaskCompleted(ctx, tx, planID, taskID, completed)
	})
}

// ToggleTask flips the completion state of a task and returns the new
// state. Returns ErrNotFound if the plan has no such task.
func (db *DB) ToggleTask(ctx context.Context, planID, taskID string) (bool, error) {
	var completed bool
	err := db.WithTx(ctx, func(tx *Tx) error {
		err := tx.QueryRowContext(ctx,
			"SELECT completed FROM plan_tasks WHERE id = ? AND plan_id = ?",
			taskID, planID,
		).Scan(&completed)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("query task %s: %w", taskID, err)
		}
		completed = !completed
		return setTaskCompleted(ctx, tx, planID, taskID, completed)
	})
	return completed, err
}

func setTaskCompleted(ctx context.Context, q querier, planID, taskID string, completed bool) error {
	now := formatTimestamp(time.Now())
	var completedAt sql.NullString
	if completed {
		completedAt = sql.NullString{String: now, Valid: true}
	}

	res, err := q.ExecContext(ctx,
		"UPDATE plan_tasks SET completed = ?, completed_at = ? WHERE id = ? AND plan_id = ?",
		completed, completedAt, taskID, planID,
	)
	if err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := q.ExecContext(ctx, "UPDATE plans SET updated_at = ? WHERE id = ?", now, planID); err != nil {
		return fmt.Errorf("touch plan %s: %w", planID, err)
	}
	return nil
}

// =============================================================================
// Plan Reads
// =============================================================================

// GetPlan loads a plan with all phases and tasks.
// Returns ErrNotFound if no plan has the ID.
func (db *DB) GetPlan(ctx context.Context, id string) (*planner.Plan, error) {
	var (
		p                    planner.Plan
		category, start, end string
		createdAt            sql.NullString
	)
	err := db.QueryRowContext(ctx, `
		SELECT
			id, title, description, category, start_date, end_date,
			lunar_start, lunar_end, total_days, total_hours, hours_per_day,
			intensity, created_at
		FROM plans
		WHERE id = ?
	`, id).Scan(
		&p.ID, &p.Title, &p.Description, &category, &start, &end,
		&p.LunarStart, &p.LunarEnd, &p.TotalDays, &p.TotalHours, &p.HoursPerDay,
		&p.Intensity, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query plan %s: %w", id, err)
	}

	p.Category = planner.Category(category)
	if p.Start, err = parseDate("start_date", start); err != nil {
		return nil, err
	}
	if p.End, err = parseDate("end_date", end); err != nil {
		return nil, err
	}
	if t := parseTimestamp(createdAt); t != nil {
		p.CreatedAt = *t
	}

	if p.Phases, err = db.getPhases(ctx, id); err != nil {
		return nil, err
	}
	if err := db.attachTasks(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) getPhases(ctx context.Context, planID string) ([]planner.Phase, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			number, title, description, phase_type,
			start_day, end_day, duration, start_date, end_date
		FROM plan_phases
		WHERE plan_id = ?
		ORDER BY number
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("query phases of plan %s: %w", planID, err)
	}
	defer rows.Close()

	var phases []planner.Phase
	for rows.Next() {
		var (
			ph         planner.Phase
			phaseType  string
			start, end string
		)
		if err := rows.Scan(
			&ph.Number, &ph.Title, &ph.Description, &phaseType,
			&ph.StartDay, &ph.EndDay, &ph.Duration, &start, &end,
		); err != nil {
			return nil, fmt.Errorf("scan phase: %w", err)
		}
		ph.Type = planner.PhaseType(phaseType)
		if ph.Start, err = parseDate("phase start_date", start); err != nil {
			return nil, err
		}
		if ph.End, err = parseDate("phase end_date", end); err != nil {
			return nil, err
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phases: %w", err)
	}
	return phases, nil
}

func (db *DB) attachTasks(ctx context.Context, p *planner.Plan) error {
	rows, err := db.QueryContext(ctx, `
		SELECT phase_number, id, text, tags, completed, days_from_start
		FROM plan_tasks
		WHERE plan_id = ?
		ORDER BY phase_number, position
	`, p.ID)
	if err != nil {
		return fmt.Errorf("query tasks of plan %s: %w", p.ID, err)
	}
	defer rows.Close()

	byNumber := make(map[int]*planner.Phase, len(p.Phases))
	for i := range p.Phases {
		byNumber[p.Phases[i].Number] = &p.Phases[i]
	}

	for rows.Next() {
		var (
			number   int
			task     planner.Task
			tagsJSON string
		)
		if err := rows.Scan(&number, &task.ID, &task.Text, &tagsJSON, &task.Completed, &task.DaysFromStart); err != nil {
			return fmt.Errorf("scan task: %w", err)
		}
		if task.Tags, err = UnmarshalTags(tagsJSON); err != nil {
			return fmt.Errorf("unmarshal tags of task %s: %w", task.ID, err)
		}
		ph, ok := byNumber[number]
		if !ok {
			return fmt.Errorf("task %s references missing phase %d", task.ID, number)
		}
		ph.Tasks = append(ph.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tasks: %w", err)
	}
	return nil
}

// ListPlans returns plan summaries, newest first.
func (db *DB) ListPlans(ctx context.Context, limit, offset int) ([]PlanSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
		SELECT
			p.id, p.title, p.category, p.start_date, p.end_date, p.total_days,
			(SELECT COUNT(*) FROM plan_tasks t WHERE t.plan_id = p.id),
			(SELECT COUNT(*) FROM plan_tasks t WHERE t.plan_id = p.id AND t.completed = 1),
			p.created_at, p.updated_at
		FROM plans p
		ORDER BY p.created_at DESC, p.id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	plans := []PlanSummary{}
	for rows.Next() {
		var (
			s                    PlanSummary
			category             string
			createdAt, updatedAt sql.NullString
		)
		if err := rows.Scan(
			&s.ID, &s.Title, &category, &s.StartDate, &s.EndDate, &s.TotalDays,
			&s.TotalTasks, &s.CompletedTasks, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan summary: %w", err)
		}
		s.Category = planner.Category(category)
		if t := parseTimestamp(createdAt); t != nil {
			s.CreatedAt = *t
		}
		if t := parseTimestamp(updatedAt); t != nil {
			s.UpdatedAt = *t
		}
		plans = append(plans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return plans, nil
}

// Stats counts stored plans and tasks.
func (db *DB) Stats(ctx context.Context) (*StoreStats, error) {
	var s StoreStats
	err := db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM plans),
			(SELECT COUNT(*) FROM plan_tasks),
			(SELECT COUNT(*) FROM plan_tasks WHERE completed = 1)
	`).Scan(&s.Plans, &s.Tasks, &s.CompletedTasks)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return &s, nil
}
