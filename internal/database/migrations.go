package database

// migrationsSQL contains all database migrations, applied in order by
// version number.
var migrationsSQL = map[int]string{
	1: migrationV1PlanSchema,
	2: migrationV2TaskProgressIndex,
}

// migrationV1PlanSchema creates the plan tables.
//
// A plan owns its phases and tasks; both cascade on delete. Dates are
// stored as YYYY-MM-DD text and task tags as a JSON array.
const migrationV1PlanSchema = `
-- Migration 001: plans, phases, tasks

CREATE TABLE IF NOT EXISTS plans (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL CHECK (category IN (
        'learning',
        'fitness',
        'project',
        'writing',
        'skill',
        'general'
    )),
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,

    -- Lunar labels of the start and end dates, e.g. 正月初一
    lunar_start TEXT NOT NULL DEFAULT '',
    lunar_end TEXT NOT NULL DEFAULT '',

    total_days INTEGER NOT NULL,
    total_hours REAL NOT NULL,
    hours_per_day REAL NOT NULL,
    intensity INTEGER NOT NULL CHECK (intensity BETWEEN 1 AND 5),

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at);

CREATE TABLE IF NOT EXISTS plan_phases (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    plan_id TEXT NOT NULL,
    number INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    phase_type TEXT NOT NULL,

    -- Offsets from the plan start, inclusive
    start_day INTEGER NOT NULL,
    end_day INTEGER NOT NULL,
    duration INTEGER NOT NULL,

    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,

    FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE,
    UNIQUE (plan_id, number)
);

CREATE TABLE IF NOT EXISTS plan_tasks (
    id TEXT PRIMARY KEY,
    plan_id TEXT NOT NULL,
    phase_number INTEGER NOT NULL,

    -- Order within the phase
    position INTEGER NOT NULL,

    text TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    completed INTEGER NOT NULL DEFAULT 0,
    days_from_start INTEGER NOT NULL DEFAULT 0,

    FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE,
    UNIQUE (plan_id, phase_number, position)
);

CREATE INDEX IF NOT EXISTS idx_plan_tasks_plan ON plan_tasks(plan_id, phase_number, position);
`

// migrationV2TaskProgressIndex adds completion timestamps for progress
// reporting.
const migrationV2TaskProgressIndex = `
-- Migration 002: task completion tracking

ALTER TABLE plan_tasks ADD COLUMN completed_at TEXT;

CREATE INDEX IF NOT EXISTS idx_plan_tasks_completed
    ON plan_tasks(plan_id, completed);
`
