package proposer

import (
	"context"
	"fmt"
	"math"

	"github.com/averhoef/thesisflow/internal/domain"
)

// targetTaskHours is the effort chunk the template proposer aims for per
// task before dependency chaining.
const targetTaskHours = 6.0

// planningFill is the share of available hours the template proposer
// plans against. The remainder stays unplanned slack so per-task minute
// rounding never tips an exactly-full schedule into infeasibility.
const planningFill = 0.95

// templateProposer derives a proposal directly from the field template,
// without a model. It is the implementation selected when the model
// backend is disabled; unlike a silent fallback it is chosen explicitly
// at wiring time.
type templateProposer struct{}

// NewTemplateProposer creates a deterministic template-backed Proposer.
func NewTemplateProposer() Proposer {
	return &templateProposer{}
}

func (s *templateProposer) Propose(_ context.Context, req Request) (*domain.PlanProposal, error) {
	tmpl := TemplateFor(req.Field)

	out := &domain.PlanProposal{Phases: make([]domain.PhaseProposal, 0, len(tmpl.Phases))}
	for _, hint := range tmpl.Phases {
		phaseHours := req.TotalHours * planningFill * hint.Weight
		taskCount := int(math.Ceil(phaseHours / targetTaskHours))
		if taskCount < 1 {
			taskCount = 1
		}
		perTask := phaseHours / float64(taskCount)

		ph := domain.PhaseProposal{
			Name:        hint.Name,
			Description: hint.Description,
			Deliverable: hint.Name + " complete",
			Weight:      hint.Weight,
			Tasks:       make([]domain.TaskProposal, 0, taskCount),
		}
		for i := 0; i < taskCount; i++ {
			title := hint.Name
			if taskCount > 1 {
				title = fmt.Sprintf("%s (part %d of %d)", hint.Name, i+1, taskCount)
			}
			task := domain.TaskProposal{
				Title:          title,
				Description:    hint.Description,
				EstimatedHours: perTask,
			}
			// Parts of a phase build on each other.
			if i > 0 {
				task.DependsOn = []string{ph.Tasks[i-1].Title}
			}
			ph.Tasks = append(ph.Tasks, task)
		}
		out.Phases = append(out.Phases, ph)
	}

	if err := Validate(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return out, nil
}
