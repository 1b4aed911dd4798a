package formatter

import (
	"fmt"
	"strings"

	"github.com/averhoef/thesisflow/internal/domain"
)

const dateLayout = "2006-01-02"

// FormatPlan renders the plan overview: feasibility, scope, and a phase
// table with per-phase completion bars. When withTasks is set each phase
// is followed by its task list.
func FormatPlan(project *domain.Project, plan *domain.Plan, withTasks bool) string {
	var b strings.Builder

	b.WriteString(Header(project.Name) + "\n")
	b.WriteString(fmt.Sprintf("  Status:    %s\n", PlanStatusIndicator(plan.Status)))
	if plan.Status == domain.PlanInfeasible {
		b.WriteString(StyleRed.Render(fmt.Sprintf("  Shortfall: %.1f hours do not fit before the deadline", plan.ShortfallHours)) + "\n")
	}
	b.WriteString(fmt.Sprintf("  Deadline:  %s\n", project.Deadline.Format(dateLayout)))
	b.WriteString(fmt.Sprintf("  Scope:     %.0f hours across %d phases\n", plan.TotalEstimatedHours(), len(plan.Phases)))
	b.WriteString("\n")

	if len(plan.Phases) == 0 {
		b.WriteString(Dim("  No scheduled phases.") + "\n")
		return b.String()
	}

	headers := []string{"Phase", "Window", "Hours", "Progress"}
	rows := make([][]string, 0, len(plan.Phases))
	for _, ph := range plan.Phases {
		rows = append(rows, []string{
			ph.Name,
			fmt.Sprintf("%s → %s", ph.StartDate.Format(dateLayout), ph.EndDate.Format(dateLayout)),
			fmt.Sprintf("%.0f", ph.EstimatedHours),
			RenderProgress(phaseCompletion(ph), 12),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if withTasks {
		for _, ph := range plan.Phases {
			b.WriteString("\n" + Bold(ph.Name) + " " + Dim("("+ph.Deliverable+")") + "\n")
			for _, task := range ph.Tasks {
				b.WriteString(fmt.Sprintf("  %s %s %s\n",
					TaskStatusIndicator(task.Status),
					task.Title,
					Dim(fmt.Sprintf("(%.1fh, %d sessions, due %s)",
						task.EstimatedHours, task.Sessions, task.DueDate.Format(dateLayout)))))
			}
		}
	}

	return b.String()
}

// FormatDailyTasks renders one day's assignment as a checklist.
func FormatDailyTasks(date string, tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString(Header("Today: "+date) + "\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("  Nothing scheduled. Rest day or out of plan window.") + "\n")
		return b.String()
	}
	for _, task := range tasks {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			TaskStatusIndicator(task.Status),
			task.Title,
			Dim(fmt.Sprintf("[%s]", task.ID))))
	}
	return b.String()
}

func phaseCompletion(ph domain.Phase) float64 {
	if len(ph.Tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range ph.Tasks {
		if t.Status == domain.TaskComplete {
			done++
		}
	}
	return float64(done) / float64(len(ph.Tasks))
}
