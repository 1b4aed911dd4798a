package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE additions tolerate re-runs.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		field            TEXT NOT NULL DEFAULT '',
		goal_description TEXT NOT NULL DEFAULT '',
		start_date       TEXT NOT NULL,
		deadline         TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'active'
		                 CHECK(status IN ('active','paused','done','archived')),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id                   TEXT PRIMARY KEY,
		project_id           TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		deadline             TEXT NOT NULL,
		timezone             TEXT NOT NULL DEFAULT 'UTC',
		daily_hours          REAL NOT NULL,
		work_days_per_week   INTEGER NOT NULL,
		preferred_work_start TEXT NOT NULL DEFAULT '',
		focus_session_min    INTEGER NOT NULL,
		procrastination      TEXT NOT NULL DEFAULT 'medium'
		                     CHECK(procrastination IN ('low','medium','high')),
		writing_style        TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_project ON profiles(project_id)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		status          TEXT NOT NULL
		                CHECK(status IN ('feasible','infeasible')),
		shortfall_hours REAL NOT NULL DEFAULT 0,
		is_current      INTEGER NOT NULL DEFAULT 0,
		generated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_project ON plans(project_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_current
		ON plans(project_id) WHERE is_current = 1`,

	`CREATE TABLE IF NOT EXISTS phases (
		id              TEXT PRIMARY KEY,
		plan_id         TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		deliverable     TEXT NOT NULL DEFAULT '',
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		estimated_hours REAL NOT NULL DEFAULT 0,
		order_index     INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_plan ON phases(plan_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		phase_id        TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		estimated_hours REAL NOT NULL DEFAULT 0,
		priority        INTEGER NOT NULL DEFAULT 0,
		due_date        TEXT NOT NULL,
		depends_on      TEXT NOT NULL DEFAULT '[]',
		deliverable     TEXT NOT NULL DEFAULT '',
		assigned_dates  TEXT NOT NULL DEFAULT '[]',
		sessions        INTEGER NOT NULL DEFAULT 0,
		status          TEXT NOT NULL DEFAULT 'not_started'
		                CHECK(status IN ('not_started','in_progress','complete')),
		completed_at    TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_phase ON tasks(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS progress_records (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date            TEXT NOT NULL,
		tasks_planned   INTEGER NOT NULL,
		tasks_completed INTEGER NOT NULL,
		hours_worked    REAL NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		UNIQUE(project_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_progress_project_date
		ON progress_records(project_id, date)`,

	`CREATE TABLE IF NOT EXISTS replan_events (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		trigger_reason  TEXT NOT NULL,
		days_behind     INTEGER NOT NULL DEFAULT 0,
		completion_rate REAL NOT NULL DEFAULT 0,
		new_plan_id     TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_replan_events_project ON replan_events(project_id)`,
}
