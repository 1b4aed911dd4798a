package proposer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/averhoef/thesisflow/internal/domain"
)

func validProposal() *domain.PlanProposal {
	return &domain.PlanProposal{
		Phases: []domain.PhaseProposal{
			{
				Name: "Literature Review", Weight: 0.4,
				Tasks: []domain.TaskProposal{
					{Title: "Collect sources", EstimatedHours: 10},
					{Title: "Annotate sources", EstimatedHours: 10, DependsOn: []string{"Collect sources"}},
				},
			},
			{
				Name: "Writing", Weight: 0.6,
				Tasks: []domain.TaskProposal{
					{Title: "Draft chapters", EstimatedHours: 30, DependsOn: []string{"Annotate sources"}},
				},
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(validProposal()))
}

func TestValidate_WeightSumOutOfTolerance(t *testing.T) {
	p := validProposal()
	p.Phases[0].Weight = 0.5 // sum 1.1
	assert.Error(t, Validate(p))

	// Within tolerance is fine.
	p.Phases[0].Weight = 0.41 // sum 1.01
	assert.NoError(t, Validate(p))
}

func TestValidate_UnknownDependency(t *testing.T) {
	p := validProposal()
	p.Phases[0].Tasks[0].DependsOn = []string{"No such task"}
	assert.Error(t, Validate(p))
}

func TestValidate_LaterPhaseDependencyRejected(t *testing.T) {
	p := validProposal()
	p.Phases[0].Tasks[0].DependsOn = []string{"Draft chapters"}
	assert.Error(t, Validate(p))
}

func TestValidate_SamePhaseForwardReferenceAllowed(t *testing.T) {
	p := validProposal()
	p.Phases[0].Tasks[0].DependsOn = []string{"Annotate sources"}
	p.Phases[0].Tasks[1].DependsOn = nil
	assert.NoError(t, Validate(p))
}

func TestValidate_DuplicateTitle(t *testing.T) {
	p := validProposal()
	p.Phases[1].Tasks[0].Title = "Collect sources"
	p.Phases[1].Tasks[0].DependsOn = nil
	assert.Error(t, Validate(p))
}

func TestValidate_EmptyAndNonPositive(t *testing.T) {
	p := &domain.PlanProposal{}
	assert.Error(t, Validate(p))

	p = validProposal()
	p.Phases[0].Tasks[0].EstimatedHours = 0
	assert.Error(t, Validate(p))

	p = validProposal()
	p.Phases[0].Weight = -0.1
	assert.Error(t, Validate(p))
}
