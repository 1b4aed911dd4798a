package proposer

import (
	"context"
	"errors"
	"fmt"

	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/llm"
)

// proposalPayload is the JSON shape the model is asked to produce.
type proposalPayload struct {
	Phases []phasePayload `json:"phases"`
}

type phasePayload struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Deliverable string        `json:"deliverable"`
	Weight      float64       `json:"weight"`
	Tasks       []taskPayload `json:"tasks"`
}

type taskPayload struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimated_hours"`
	Deliverable    string   `json:"deliverable"`
	DependsOn      []string `json:"depends_on"`
}

func (p proposalPayload) toDomain() *domain.PlanProposal {
	out := &domain.PlanProposal{Phases: make([]domain.PhaseProposal, 0, len(p.Phases))}
	for _, ph := range p.Phases {
		dp := domain.PhaseProposal{
			Name:        ph.Name,
			Description: ph.Description,
			Deliverable: ph.Deliverable,
			Weight:      ph.Weight,
			Tasks:       make([]domain.TaskProposal, 0, len(ph.Tasks)),
		}
		for _, t := range ph.Tasks {
			dp.Tasks = append(dp.Tasks, domain.TaskProposal{
				Title:          t.Title,
				Description:    t.Description,
				EstimatedHours: t.EstimatedHours,
				Deliverable:    t.Deliverable,
				DependsOn:      t.DependsOn,
			})
		}
		out.Phases = append(out.Phases, dp)
	}
	return out
}

// llmProposer implements Proposer against a language model.
type llmProposer struct {
	client llm.Client
}

// NewLLMProposer creates a model-backed Proposer.
func NewLLMProposer(client llm.Client) Proposer {
	return &llmProposer{client: client}
}

// invalidOutputRetries is how many times a structurally invalid proposal
// is re-requested with identical inputs before giving up.
const invalidOutputRetries = 1

func (s *llmProposer) Propose(ctx context.Context, req Request) (*domain.PlanProposal, error) {
	tmpl := TemplateFor(req.Field)
	prompt := buildUserPrompt(req, tmpl)

	task := llm.TaskPropose
	if req.RemainingScope != "" {
		task = llm.TaskReplan
	}

	var lastErr error
	for attempt := 0; attempt <= invalidOutputRetries; attempt++ {
		resp, err := s.client.Generate(ctx, llm.GenerateRequest{
			Task:         task,
			SystemPrompt: proposeSystemPrompt,
			UserPrompt:   prompt,
		})
		if err != nil {
			// Transport-level failures are not retried here; the client
			// already applied its own retry budget.
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		payload, err := llm.ExtractJSON[proposalPayload](resp.Text, nil)
		if err != nil {
			lastErr = err
			continue
		}

		proposal := payload.toDomain()
		if err := Validate(proposal); err != nil {
			lastErr = err
			continue
		}
		return proposal, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalid, lastErr)
}

// IsUnavailable reports whether err means the capability could not be
// reached, as opposed to producing bad output.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
