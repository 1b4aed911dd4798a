// Package repository persists the planner's records in SQLite. Each
// repository takes a db.DBTX so the same implementation works standalone
// or inside a unit of work.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/averhoef/thesisflow/internal/domain"
)

// ErrNotFound marks lookups that matched no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByName(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ProfileRepo interface {
	Upsert(ctx context.Context, p *domain.Profile) error
	GetByProject(ctx context.Context, projectID string) (*domain.Profile, error)
}

// PlanRepo stores whole plans. SaveCurrent writes the plan with all its
// phases and tasks and marks it current, demoting the previous current
// plan in the same call; run it inside a unit of work so readers never
// see a half-swapped plan.
type PlanRepo interface {
	SaveCurrent(ctx context.Context, plan *domain.Plan) error
	GetCurrent(ctx context.Context, projectID string) (*domain.Plan, error)
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	UpdateTaskStatus(ctx context.Context, planID, taskID string, status domain.TaskStatus, completedAt *time.Time) error
}

type ProgressRepo interface {
	// Upsert inserts the day's record or replaces it when the day is
	// corrected.
	Upsert(ctx context.Context, r *domain.ProgressRecord) error
	ListByProject(ctx context.Context, projectID string) ([]domain.ProgressRecord, error)
}

type ReplanEventRepo interface {
	Create(ctx context.Context, e *domain.ReplanEvent) error
	ListByProject(ctx context.Context, projectID string) ([]domain.ReplanEvent, error)
}
