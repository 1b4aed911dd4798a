// Package service wires the planning core to persistence and exposes the
// application's use cases.
package service

import (
	"context"
	"time"

	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/progress"
	"github.com/averhoef/thesisflow/internal/replan"
)

// IntakeInput is the questionnaire gathered at project creation.
type IntakeInput struct {
	Name            string
	Field           string
	GoalDescription string
	Deadline        time.Time
	Timezone        string

	DailyHours         float64
	WorkDaysPerWeek    int
	PreferredWorkStart string
	FocusSessionMin    int
	Procrastination    domain.ProcrastinationLevel
	WritingStyle       string
}

// GenerateResult is the outcome of initial plan generation. When the
// scope does not fit before the deadline the plan is still returned,
// flagged infeasible with the shortfall, and is not stored as current.
type GenerateResult struct {
	Project *domain.Project
	Plan    *domain.Plan
}

type PlanService interface {
	// GeneratePlan creates the project with its profile, asks the
	// proposer for a decomposition, schedules it and stores the result.
	GeneratePlan(ctx context.Context, in IntakeInput) (*GenerateResult, error)

	GetCurrentPlan(ctx context.Context, projectID string) (*domain.Plan, error)

	// ListProjects returns the known projects, optionally including
	// archived ones.
	ListProjects(ctx context.Context, includeArchived bool) ([]domain.Project, error)

	// FindProject resolves a reference that is either a project ID or a
	// project name.
	FindProject(ctx context.Context, ref string) (*domain.Project, error)

	// GetDailyAssignment returns the tasks assigned to a date, ordered
	// by priority.
	GetDailyAssignment(ctx context.Context, projectID string, date time.Time) ([]domain.Task, error)

	// CompleteTask marks a task of the current plan complete.
	CompleteTask(ctx context.Context, projectID, taskID string) error
}

type ProgressService interface {
	RecordProgress(ctx context.Context, projectID string, date time.Time, tasksPlanned, tasksCompleted int, hoursWorked float64) (*domain.ProgressRecord, error)
	GetProgressState(ctx context.Context, projectID string) (progress.State, error)

	// CheckTriggers evaluates the replan policy against the current
	// state; it reports the trigger without firing it.
	CheckTriggers(ctx context.Context, projectID string) (domain.ReplanTrigger, bool, error)
}

type ReplanService interface {
	// TriggerReplan runs the replanning engine and, on success, swaps
	// the stored plan and appends the audit event atomically.
	TriggerReplan(ctx context.Context, projectID string, reason domain.ReplanTrigger) (*replan.Result, error)

	ListReplanEvents(ctx context.Context, projectID string) ([]domain.ReplanEvent, error)
}
