package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/averhoef/thesisflow/internal/db"
	"github.com/averhoef/thesisflow/internal/domain"
)

// SQLiteReplanEventRepo implements ReplanEventRepo over SQLite. The log
// is append-only.
type SQLiteReplanEventRepo struct {
	db db.DBTX
}

func NewSQLiteReplanEventRepo(dbtx db.DBTX) *SQLiteReplanEventRepo {
	return &SQLiteReplanEventRepo{db: dbtx}
}

func (r *SQLiteReplanEventRepo) Create(ctx context.Context, e *domain.ReplanEvent) error {
	query := `INSERT INTO replan_events (
		id, project_id, trigger_reason, days_behind, completion_rate, new_plan_id, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		string(e.Trigger),
		e.DaysBehind,
		e.CompletionRate,
		e.NewPlanID,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting replan event: %w", err)
	}
	return nil
}

func (r *SQLiteReplanEventRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ReplanEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, trigger_reason, days_behind, completion_rate, new_plan_id, created_at
		FROM replan_events WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing replan events: %w", err)
	}
	defer rows.Close()

	var events []domain.ReplanEvent
	for rows.Next() {
		var e domain.ReplanEvent
		var triggerStr, createdStr string
		if err := rows.Scan(&e.ID, &e.ProjectID, &triggerStr,
			&e.DaysBehind, &e.CompletionRate, &e.NewPlanID, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning replan event: %w", err)
		}
		e.Trigger = domain.ReplanTrigger(triggerStr)
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing event created_at: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating replan events: %w", err)
	}
	return events, nil
}
