package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/averhoef/thesisflow/internal/domain"
)

// Options carries everything Schedule needs beyond the proposal and the
// capacity calendar. PlanID seeds deterministic phase/task identifiers:
// identical inputs (including PlanID) yield byte-identical plans.
type Options struct {
	PlanID          string
	ProjectID       string
	FocusSessionMin int
	GeneratedAt     time.Time

	// FixedPast holds frozen phases from a previous plan during a
	// replan. They are prepended verbatim; new phases start no earlier
	// than NotBefore.
	FixedPast []domain.Phase
	NotBefore time.Time
}

// CycleError reports a dependency cycle found while ordering tasks.
type CycleError struct {
	Phase string
	Tasks []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle in phase %q among tasks: %s",
		e.Phase, strings.Join(e.Tasks, " -> "))
}

func phaseID(planID string, order int) string {
	return fmt.Sprintf("%s:ph%d", planID, order)
}

func taskID(planID string, seq int) string {
	return fmt.Sprintf("%s:t%d", planID, seq)
}
