package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/averhoef/thesisflow/internal/db"
	"github.com/averhoef/thesisflow/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo over SQLite. One record per
// project per day; a second write for the same day is a correction and
// replaces the first.
type SQLiteProgressRepo struct {
	db db.DBTX
}

func NewSQLiteProgressRepo(dbtx db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: dbtx}
}

func (r *SQLiteProgressRepo) Upsert(ctx context.Context, rec *domain.ProgressRecord) error {
	query := `INSERT INTO progress_records (
		id, project_id, date, tasks_planned, tasks_completed, hours_worked, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(project_id, date) DO UPDATE SET
		tasks_planned = excluded.tasks_planned,
		tasks_completed = excluded.tasks_completed,
		hours_worked = excluded.hours_worked,
		created_at = excluded.created_at`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.ProjectID,
		rec.Date.Format(dateLayout),
		rec.TasksPlanned,
		rec.TasksCompleted,
		rec.HoursWorked,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting progress record: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, date, tasks_planned, tasks_completed, hours_worked, created_at
		FROM progress_records WHERE project_id = ? ORDER BY date`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing progress records: %w", err)
	}
	defer rows.Close()

	var records []domain.ProgressRecord
	for rows.Next() {
		var rec domain.ProgressRecord
		var dateStr, createdStr string
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &dateStr,
			&rec.TasksPlanned, &rec.TasksCompleted, &rec.HoursWorked, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning progress record: %w", err)
		}
		if rec.Date, err = parseDate(dateStr); err != nil {
			return nil, fmt.Errorf("parsing record date: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing record created_at: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress records: %w", err)
	}
	return records, nil
}
