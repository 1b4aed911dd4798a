package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/averhoef/thesisflow/internal/clock"
	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/progress"
	"github.com/averhoef/thesisflow/internal/replan"
	"github.com/averhoef/thesisflow/internal/repository"
)

type progressService struct {
	projects repository.ProjectRepo
	records  repository.ProgressRepo
	policy   config.Policy
	clk      clock.Clock
	obs      UseCaseObserver
}

func NewProgressService(database *sql.DB, policy config.Policy, clk clock.Clock, observers ...UseCaseObserver) ProgressService {
	return &progressService{
		projects: repository.NewSQLiteProjectRepo(database),
		records:  repository.NewSQLiteProgressRepo(database),
		policy:   policy,
		clk:      clk,
		obs:      useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) RecordProgress(ctx context.Context, projectID string, date time.Time, tasksPlanned, tasksCompleted int, hoursWorked float64) (*domain.ProgressRecord, error) {
	var rec *domain.ProgressRecord
	err := observe(ctx, s.obs, "record_progress", map[string]any{"project": projectID}, func() error {
		if _, err := s.projects.GetByID(ctx, projectID); err != nil {
			return err
		}
		r, err := progress.NewRecord(projectID, date, tasksPlanned, tasksCompleted, hoursWorked, s.clk.Now())
		if err != nil {
			return err
		}
		if err := s.records.Upsert(ctx, r); err != nil {
			return err
		}
		rec = r
		return nil
	})
	return rec, err
}

func (s *progressService) GetProgressState(ctx context.Context, projectID string) (progress.State, error) {
	history, err := s.records.ListByProject(ctx, projectID)
	if err != nil {
		return progress.State{}, err
	}
	return progress.ComputeState(history, s.policy, s.clk.Today()), nil
}

func (s *progressService) CheckTriggers(ctx context.Context, projectID string) (domain.ReplanTrigger, bool, error) {
	history, err := s.records.ListByProject(ctx, projectID)
	if err != nil {
		return "", false, err
	}
	state := progress.ComputeState(history, s.policy, s.clk.Today())
	trigger, fired := replan.Evaluate(state, history, s.policy)
	return trigger, fired, nil
}
