package domain

type ProcrastinationLevel string

const (
	ProcrastinationLow    ProcrastinationLevel = "low"
	ProcrastinationMedium ProcrastinationLevel = "medium"
	ProcrastinationHigh   ProcrastinationLevel = "high"
)

// ValidProcrastinationLevels is the canonical set of accepted level strings.
var ValidProcrastinationLevels = map[string]bool{
	"low": true, "medium": true, "high": true,
}

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskComplete   TaskStatus = "complete"
)

type PlanStatus string

const (
	PlanFeasible   PlanStatus = "feasible"
	PlanInfeasible PlanStatus = "infeasible"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

type ReplanTrigger string

const (
	TriggerManual         ReplanTrigger = "MANUAL"
	TriggerDaysBehind     ReplanTrigger = "DAYS_BEHIND_THRESHOLD"
	TriggerCompletionRate ReplanTrigger = "COMPLETION_RATE_THRESHOLD"
)

type ReplanState string

const (
	ReplanStable      ReplanState = "stable"
	ReplanInProgress  ReplanState = "replanning"
	ReplanFailedState ReplanState = "replan_failed"
)
