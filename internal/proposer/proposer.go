// Package proposer is the boundary to the external plan-generation
// capability. The core validates what comes back; it never fabricates a
// decomposition of its own when the capability fails.
package proposer

import (
	"context"
	"errors"

	"github.com/averhoef/thesisflow/internal/domain"
)

var (
	// ErrUnavailable indicates the proposer capability could not be
	// reached (timeout, connection failure). The caller keeps its old
	// plan and may retry later.
	ErrUnavailable = errors.New("plan proposer unavailable")

	// ErrInvalid indicates the proposer produced output that failed
	// validation even after a retry.
	ErrInvalid = errors.New("plan proposal invalid")
)

// Request describes what to decompose.
type Request struct {
	GoalDescription string
	Field           string
	TotalHours      float64
	FocusSessionMin int

	// RemainingScope, when non-empty, restricts the proposal to the
	// not-yet-completed part of the goal (replanning).
	RemainingScope string
}

// Proposer turns a goal into a candidate phase/task decomposition.
// Implementations may be model-backed or template-backed; re-invocation
// may yield a different decomposition and callers must not assume
// determinism.
type Proposer interface {
	Propose(ctx context.Context, req Request) (*domain.PlanProposal, error)
}
