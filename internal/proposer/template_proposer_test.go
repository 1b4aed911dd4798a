package proposer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateProposer_ProducesValidProposal(t *testing.T) {
	p := NewTemplateProposer()
	proposal, err := p.Propose(context.Background(), Request{
		Field:           "computer-science",
		TotalHours:      200,
		FocusSessionMin: 45,
	})
	require.NoError(t, err)
	require.NoError(t, Validate(proposal))
	assert.Len(t, proposal.Phases, 6)

	// Task hours per phase add up to the phase's weighted share of the
	// planned fill.
	for _, ph := range proposal.Phases {
		var sum float64
		for _, task := range ph.Tasks {
			sum += task.EstimatedHours
		}
		assert.InDelta(t, 200*planningFill*ph.Weight, sum, 0.01, "phase %s", ph.Name)
	}
}

func TestTemplateProposer_UnknownFieldFallsBack(t *testing.T) {
	p := NewTemplateProposer()
	proposal, err := p.Propose(context.Background(), Request{
		Field:           "underwater-basket-weaving",
		TotalHours:      40,
		FocusSessionMin: 30,
	})
	require.NoError(t, err)
	assert.Len(t, proposal.Phases, len(genericTemplate.Phases))
}

func TestTemplateProposer_Deterministic(t *testing.T) {
	p := NewTemplateProposer()
	req := Request{Field: "psychology", TotalHours: 120, FocusSessionMin: 45}

	a, err := p.Propose(context.Background(), req)
	require.NoError(t, err)
	b, err := p.Propose(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
