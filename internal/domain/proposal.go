package domain

// PlanProposal is the candidate decomposition returned by the plan
// proposer. It is transient: the feasibility scheduler consumes it
// immediately and it is never persisted as-is.
type PlanProposal struct {
	Phases []PhaseProposal
}

type PhaseProposal struct {
	Name        string
	Description string
	Deliverable string
	Weight      float64 // relative effort, all phases sum to 1.0
	Tasks       []TaskProposal
}

type TaskProposal struct {
	Title          string
	Description    string
	EstimatedHours float64
	Deliverable    string
	DependsOn      []string // titles of tasks declared earlier or in the same phase
}

// TotalWeight sums the phase weights.
func (p *PlanProposal) TotalWeight() float64 {
	var sum float64
	for _, ph := range p.Phases {
		sum += ph.Weight
	}
	return sum
}

// TaskCount counts tasks across all phases.
func (p *PlanProposal) TaskCount() int {
	n := 0
	for _, ph := range p.Phases {
		n += len(ph.Tasks)
	}
	return n
}
