package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/averhoef/thesisflow/internal/db"
	"github.com/averhoef/thesisflow/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo over SQLite. A project has at
// most one profile; Upsert replaces it.
type SQLiteProfileRepo struct {
	db db.DBTX
}

func NewSQLiteProfileRepo(dbtx db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: dbtx}
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (
		id, project_id, deadline, timezone, daily_hours, work_days_per_week,
		preferred_work_start, focus_session_min, procrastination, writing_style, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(project_id) DO UPDATE SET
		deadline = excluded.deadline,
		timezone = excluded.timezone,
		daily_hours = excluded.daily_hours,
		work_days_per_week = excluded.work_days_per_week,
		preferred_work_start = excluded.preferred_work_start,
		focus_session_min = excluded.focus_session_min,
		procrastination = excluded.procrastination,
		writing_style = excluded.writing_style`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ProjectID,
		p.Deadline.Format(dateLayout),
		p.Timezone,
		p.DailyHours,
		p.WorkDaysPerWeek,
		p.PreferredWorkStart,
		p.FocusSessionMin,
		string(p.Procrastination),
		p.WritingStyle,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) GetByProject(ctx context.Context, projectID string) (*domain.Profile, error) {
	query := `SELECT id, project_id, deadline, timezone, daily_hours, work_days_per_week,
		preferred_work_start, focus_session_min, procrastination, writing_style, created_at
		FROM profiles WHERE project_id = ?`
	row := r.db.QueryRowContext(ctx, query, projectID)

	var p domain.Profile
	var deadlineStr, procStr, createdStr string
	err := row.Scan(&p.ID, &p.ProjectID, &deadlineStr, &p.Timezone,
		&p.DailyHours, &p.WorkDaysPerWeek, &p.PreferredWorkStart,
		&p.FocusSessionMin, &procStr, &p.WritingStyle, &createdStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	p.Procrastination = domain.ProcrastinationLevel(procStr)
	if p.Deadline, err = parseDate(deadlineStr); err != nil {
		return nil, fmt.Errorf("parsing deadline: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
