package proposer

import (
	"fmt"
	"math"

	"github.com/averhoef/thesisflow/internal/domain"
)

// weightTolerance is how far the phase weight sum may drift from 1.0.
const weightTolerance = 0.02

// Validate checks the structural invariants of a proposal: phase weights
// cover the full effort, every task has positive effort, and dependency
// references resolve only to tasks declared earlier in proposal order or
// within the same phase.
func Validate(p *domain.PlanProposal) error {
	if len(p.Phases) == 0 {
		return fmt.Errorf("proposal has no phases")
	}

	if sum := p.TotalWeight(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("phase weights sum to %.3f, want 1.0 ±%.2f", sum, weightTolerance)
	}

	// declared tracks task titles visible to dependency references:
	// everything from earlier phases plus, within a phase, all of that
	// phase's tasks (in-phase forward references are legal; the
	// scheduler's topological sort orders them and rejects cycles).
	declared := make(map[string]bool)
	for pi, ph := range p.Phases {
		if ph.Name == "" {
			return fmt.Errorf("phase %d has no name", pi)
		}
		if ph.Weight <= 0 {
			return fmt.Errorf("phase %q has non-positive weight %.3f", ph.Name, ph.Weight)
		}
		if len(ph.Tasks) == 0 {
			return fmt.Errorf("phase %q has no tasks", ph.Name)
		}

		inPhase := make(map[string]bool, len(ph.Tasks))
		for _, t := range ph.Tasks {
			if t.Title == "" {
				return fmt.Errorf("phase %q contains a task with no title", ph.Name)
			}
			if inPhase[t.Title] || declared[t.Title] {
				return fmt.Errorf("duplicate task title %q", t.Title)
			}
			if t.EstimatedHours <= 0 {
				return fmt.Errorf("task %q has non-positive estimated hours", t.Title)
			}
			inPhase[t.Title] = true
		}

		for _, t := range ph.Tasks {
			for _, dep := range t.DependsOn {
				if !declared[dep] && !inPhase[dep] {
					return fmt.Errorf("task %q depends on unknown or later-phase task %q", t.Title, dep)
				}
			}
		}

		for title := range inPhase {
			declared[title] = true
		}
	}

	return nil
}
