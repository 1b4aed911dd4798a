package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/averhoef/thesisflow/internal/capacity"
	"github.com/averhoef/thesisflow/internal/clock"
	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/db"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/proposer"
	"github.com/averhoef/thesisflow/internal/repository"
	"github.com/averhoef/thesisflow/internal/scheduler"
)

type planService struct {
	database *sql.DB
	uow      db.UnitOfWork
	projects repository.ProjectRepo
	profiles repository.ProfileRepo
	plans    repository.PlanRepo
	proposer proposer.Proposer
	policy   config.Policy
	clk      clock.Clock
	obs      UseCaseObserver
}

func NewPlanService(database *sql.DB, prop proposer.Proposer, policy config.Policy, clk clock.Clock, observers ...UseCaseObserver) PlanService {
	return &planService{
		database: database,
		uow:      db.NewSQLiteUnitOfWork(database),
		projects: repository.NewSQLiteProjectRepo(database),
		profiles: repository.NewSQLiteProfileRepo(database),
		plans:    repository.NewSQLitePlanRepo(database),
		proposer: prop,
		policy:   policy,
		clk:      clk,
		obs:      useCaseObserverOrNoop(observers),
	}
}

func (s *planService) GeneratePlan(ctx context.Context, in IntakeInput) (*GenerateResult, error) {
	var result *GenerateResult
	err := observe(ctx, s.obs, "generate_plan", map[string]any{"project": in.Name}, func() error {
		now := s.clk.Now()
		today := s.clk.Today()

		project := &domain.Project{
			ID:              uuid.NewString(),
			Name:            in.Name,
			Field:           in.Field,
			GoalDescription: in.GoalDescription,
			StartDate:       today,
			Deadline:        clock.Midnight(in.Deadline),
			Status:          domain.ProjectActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		profile := &domain.Profile{
			ID:                 uuid.NewString(),
			ProjectID:          project.ID,
			Deadline:           project.Deadline,
			Timezone:           in.Timezone,
			DailyHours:         in.DailyHours,
			WorkDaysPerWeek:    in.WorkDaysPerWeek,
			PreferredWorkStart: in.PreferredWorkStart,
			FocusSessionMin:    in.FocusSessionMin,
			Procrastination:    in.Procrastination,
			WritingStyle:       in.WritingStyle,
			CreatedAt:          now,
		}

		cal, err := capacity.Compute(profile, today, profile.Deadline, s.policy)
		if err != nil {
			return err
		}

		prop, err := s.proposer.Propose(ctx, proposer.Request{
			GoalDescription: in.GoalDescription,
			Field:           in.Field,
			TotalHours:      cal.TotalHours(),
			FocusSessionMin: in.FocusSessionMin,
		})
		if err != nil {
			return err
		}

		plan, err := scheduler.Schedule(prop, cal, scheduler.Options{
			PlanID:          uuid.NewString(),
			ProjectID:       project.ID,
			FocusSessionMin: in.FocusSessionMin,
			GeneratedAt:     now,
		})
		if err != nil {
			return err
		}

		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, project); err != nil {
				return err
			}
			if err := repository.NewSQLiteProfileRepo(tx).Upsert(ctx, profile); err != nil {
				return err
			}
			if plan.Status == domain.PlanFeasible {
				return repository.NewSQLitePlanRepo(tx).SaveCurrent(ctx, plan)
			}
			// Infeasible plans are surfaced, never stored as current.
			return nil
		})
		if err != nil {
			return err
		}

		result = &GenerateResult{Project: project, Plan: plan}
		return nil
	})
	return result, err
}

func (s *planService) GetCurrentPlan(ctx context.Context, projectID string) (*domain.Plan, error) {
	return s.plans.GetCurrent(ctx, projectID)
}

func (s *planService) ListProjects(ctx context.Context, includeArchived bool) ([]domain.Project, error) {
	listed, err := s.projects.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(listed))
	for _, p := range listed {
		projects = append(projects, *p)
	}
	return projects, nil
}

func (s *planService) FindProject(ctx context.Context, ref string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, ref)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.projects.GetByName(ctx, ref)
}

func (s *planService) GetDailyAssignment(ctx context.Context, projectID string, date time.Time) ([]domain.Task, error) {
	plan, err := s.plans.GetCurrent(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return plan.TasksOn(clock.Midnight(date)), nil
}

func (s *planService) CompleteTask(ctx context.Context, projectID, taskID string) error {
	return observe(ctx, s.obs, "complete_task", map[string]any{"task": taskID}, func() error {
		plan, err := s.plans.GetCurrent(ctx, projectID)
		if err != nil {
			return err
		}
		if plan.TaskByID(taskID) == nil {
			return fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
		}
		now := s.clk.Now()
		return s.plans.UpdateTaskStatus(ctx, plan.ID, taskID, domain.TaskComplete, &now)
	})
}
