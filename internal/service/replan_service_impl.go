package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/averhoef/thesisflow/internal/db"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/replan"
	"github.com/averhoef/thesisflow/internal/repository"
)

type replanService struct {
	uow      db.UnitOfWork
	projects repository.ProjectRepo
	profiles repository.ProfileRepo
	plans    repository.PlanRepo
	records  repository.ProgressRepo
	events   repository.ReplanEventRepo
	engine   *replan.Engine
	obs      UseCaseObserver
}

func NewReplanService(database *sql.DB, engine *replan.Engine, observers ...UseCaseObserver) ReplanService {
	return &replanService{
		uow:      db.NewSQLiteUnitOfWork(database),
		projects: repository.NewSQLiteProjectRepo(database),
		profiles: repository.NewSQLiteProfileRepo(database),
		plans:    repository.NewSQLitePlanRepo(database),
		records:  repository.NewSQLiteProgressRepo(database),
		events:   repository.NewSQLiteReplanEventRepo(database),
		engine:   engine,
		obs:      useCaseObserverOrNoop(observers),
	}
}

func (s *replanService) TriggerReplan(ctx context.Context, projectID string, reason domain.ReplanTrigger) (*replan.Result, error) {
	var result *replan.Result
	err := observe(ctx, s.obs, "trigger_replan", map[string]any{
		"project": projectID,
		"reason":  string(reason),
	}, func() error {
		project, err := s.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		profile, err := s.profiles.GetByProject(ctx, projectID)
		if err != nil {
			return err
		}
		current, err := s.plans.GetCurrent(ctx, projectID)
		if err != nil {
			return err
		}
		history, err := s.records.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}

		res, err := s.engine.Replan(ctx, replan.Input{
			Project:   project,
			Profile:   profile,
			Current:   current,
			History:   history,
			Trigger:   reason,
			NewPlanID: uuid.NewString(),
		})
		if err != nil {
			result = res
			return err
		}

		// Reused results were persisted by the run that produced them;
		// infeasible results leave the stored plan untouched.
		if res.Plan != nil && !res.Reused {
			err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				if err := repository.NewSQLitePlanRepo(tx).SaveCurrent(ctx, res.Plan); err != nil {
					return err
				}
				return repository.NewSQLiteReplanEventRepo(tx).Create(ctx, res.Event)
			})
			if err != nil {
				return err
			}
		}

		result = res
		return nil
	})
	return result, err
}

func (s *replanService) ListReplanEvents(ctx context.Context, projectID string) ([]domain.ReplanEvent, error) {
	return s.events.ListByProject(ctx, projectID)
}
