package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/averhoef/thesisflow/internal/db"
	"github.com/averhoef/thesisflow/internal/domain"
)

// SQLitePlanRepo implements PlanRepo over SQLite. Plans are written
// whole: SaveCurrent inserts the plan, its phases and tasks, and flips
// the current-plan marker in one pass.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(dbtx db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: dbtx}
}

func (r *SQLitePlanRepo) SaveCurrent(ctx context.Context, plan *domain.Plan) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE plans SET is_current = 0 WHERE project_id = ? AND is_current = 1`,
		plan.ProjectID); err != nil {
		return fmt.Errorf("demoting previous plan: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (id, project_id, status, shortfall_hours, is_current, generated_at)
		VALUES (?, ?, ?, ?, 1, ?)`,
		plan.ID,
		plan.ProjectID,
		string(plan.Status),
		plan.ShortfallHours,
		plan.GeneratedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for _, ph := range plan.Phases {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO phases (id, plan_id, name, description, deliverable,
				start_date, end_date, estimated_hours, order_index)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			phaseKey(plan.ID, ph.ID),
			plan.ID,
			ph.Name,
			ph.Description,
			ph.Deliverable,
			ph.StartDate.Format(dateLayout),
			ph.EndDate.Format(dateLayout),
			ph.EstimatedHours,
			ph.OrderIndex,
		); err != nil {
			return fmt.Errorf("inserting phase %s: %w", ph.Name, err)
		}

		for _, t := range ph.Tasks {
			if _, err := r.db.ExecContext(ctx,
				`INSERT INTO tasks (id, phase_id, title, description, estimated_hours,
					priority, due_date, depends_on, deliverable, assigned_dates,
					sessions, status, completed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				taskKey(plan.ID, t.ID),
				phaseKey(plan.ID, ph.ID),
				t.Title,
				t.Description,
				t.EstimatedHours,
				t.Priority,
				t.DueDate.Format(dateLayout),
				marshalStrings(t.DependsOn),
				t.Deliverable,
				marshalDates(t.AssignedDates),
				t.Sessions,
				string(t.Status),
				nullableTimeToString(t.CompletedAt, time.RFC3339),
			); err != nil {
				return fmt.Errorf("inserting task %s: %w", t.Title, err)
			}
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetCurrent(ctx context.Context, projectID string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, status, shortfall_hours, generated_at
		FROM plans WHERE project_id = ? AND is_current = 1`, projectID)
	return r.loadPlan(ctx, row)
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, status, shortfall_hours, generated_at
		FROM plans WHERE id = ?`, id)
	return r.loadPlan(ctx, row)
}

func (r *SQLitePlanRepo) UpdateTaskStatus(ctx context.Context, planID, taskID string, status domain.TaskStatus, completedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, completed_at = ? WHERE id = ?`,
		string(status),
		nullableTimeToString(completedAt, time.RFC3339),
		taskKey(planID, taskID),
	)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking task update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanRepo) loadPlan(ctx context.Context, row *sql.Row) (*domain.Plan, error) {
	var plan domain.Plan
	var statusStr, generatedStr string
	err := row.Scan(&plan.ID, &plan.ProjectID, &statusStr, &plan.ShortfallHours, &generatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	plan.Status = domain.PlanStatus(statusStr)
	if plan.GeneratedAt, err = time.Parse(time.RFC3339, generatedStr); err != nil {
		return nil, fmt.Errorf("parsing generated_at: %w", err)
	}

	if err := r.loadPhases(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *SQLitePlanRepo) loadPhases(ctx context.Context, plan *domain.Plan) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, deliverable, start_date, end_date, estimated_hours, order_index
		FROM phases WHERE plan_id = ? ORDER BY order_index`, plan.ID)
	if err != nil {
		return fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ph domain.Phase
		var startStr, endStr string
		var storedID string
		if err := rows.Scan(&storedID, &ph.Name, &ph.Description, &ph.Deliverable,
			&startStr, &endStr, &ph.EstimatedHours, &ph.OrderIndex); err != nil {
			return fmt.Errorf("scanning phase: %w", err)
		}
		ph.ID = stripKey(plan.ID, storedID)
		ph.PlanID = plan.ID
		if ph.StartDate, err = parseDate(startStr); err != nil {
			return fmt.Errorf("parsing phase start_date: %w", err)
		}
		if ph.EndDate, err = parseDate(endStr); err != nil {
			return fmt.Errorf("parsing phase end_date: %w", err)
		}
		plan.Phases = append(plan.Phases, ph)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating phases: %w", err)
	}

	for i := range plan.Phases {
		if err := r.loadTasks(ctx, plan.ID, &plan.Phases[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePlanRepo) loadTasks(ctx context.Context, planID string, ph *domain.Phase) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, estimated_hours, priority, due_date,
			depends_on, deliverable, assigned_dates, sessions, status, completed_at
		FROM tasks WHERE phase_id = ? ORDER BY priority, title`, phaseKey(planID, ph.ID))
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Task
		var storedID, dueStr, depsRaw, datesRaw, statusStr string
		var completedStr sql.NullString
		if err := rows.Scan(&storedID, &t.Title, &t.Description, &t.EstimatedHours,
			&t.Priority, &dueStr, &depsRaw, &t.Deliverable, &datesRaw,
			&t.Sessions, &statusStr, &completedStr); err != nil {
			return fmt.Errorf("scanning task: %w", err)
		}
		t.ID = stripKey(planID, storedID)
		t.PhaseID = ph.ID
		t.Status = domain.TaskStatus(statusStr)
		if t.DueDate, err = parseDate(dueStr); err != nil {
			return fmt.Errorf("parsing task due_date: %w", err)
		}
		if t.DependsOn, err = unmarshalStrings(depsRaw); err != nil {
			return fmt.Errorf("decoding task dependencies: %w", err)
		}
		if t.AssignedDates, err = unmarshalDates(datesRaw); err != nil {
			return fmt.Errorf("decoding assigned dates: %w", err)
		}
		if t.CompletedAt, err = parseNullableTime(completedStr, time.RFC3339); err != nil {
			return fmt.Errorf("parsing completed_at: %w", err)
		}
		ph.Tasks = append(ph.Tasks, t)
	}
	return rows.Err()
}

// Frozen phases keep their original identifiers across replans, so the
// same logical phase can belong to several stored plans. Rows are keyed
// by plan to keep primary keys unique; the plan prefix is stripped on
// load.
func phaseKey(planID, id string) string { return planID + "/" + id }
func taskKey(planID, id string) string  { return planID + "/" + id }

func stripKey(planID, stored string) string {
	return strings.TrimPrefix(stored, planID+"/")
}
