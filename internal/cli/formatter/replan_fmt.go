package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/replan"
)

// FormatReplanResult renders the outcome of a replanning run: the new
// feasibility, what stayed frozen, and the task-level delta.
func FormatReplanResult(res *replan.Result) string {
	var b strings.Builder
	b.WriteString(Header("Replan") + "\n")

	if res.Reused {
		b.WriteString(Dim("  Already replanned today; showing the existing result.") + "\n")
	}

	if res.Infeasible {
		b.WriteString(StyleRed.Render(fmt.Sprintf(
			"  ● INFEASIBLE — %.1f hours of remaining work do not fit before the deadline.",
			res.ShortfallHours)) + "\n")
		b.WriteString(Dim("  The previous plan was kept. Reduce scope or move the deadline.") + "\n")
		return b.String()
	}
	if res.Plan == nil {
		b.WriteString(StyleRed.Render("  Replanning failed; the previous plan was kept.") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  New plan:   %s %s\n", res.Plan.ID, PlanStatusIndicator(res.Plan.Status)))
	if res.Event != nil {
		b.WriteString(fmt.Sprintf("  Trigger:    %s\n", res.Event.Trigger))
		b.WriteString(fmt.Sprintf("  Days behind: %d, completion rate %.0f%%\n",
			res.Event.DaysBehind, res.Event.CompletionRate*100))
	}

	b.WriteString("\n")
	b.WriteString(deltaLine(StyleGreen, "+", "added", res.Delta.Added))
	b.WriteString(deltaLine(StyleYellow, "~", "moved", res.Delta.Moved))
	b.WriteString(deltaLine(StyleRed, "-", "removed", res.Delta.Removed))
	if len(res.Delta.Added)+len(res.Delta.Moved)+len(res.Delta.Removed) == 0 {
		b.WriteString(Dim("  No task changes.") + "\n")
	}

	return b.String()
}

// FormatReplanEvents renders the replan audit log, newest first.
func FormatReplanEvents(events []domain.ReplanEvent) string {
	var b strings.Builder
	b.WriteString(Header("Replan History") + "\n")
	if len(events) == 0 {
		b.WriteString(Dim("  No replans recorded.") + "\n")
		return b.String()
	}

	headers := []string{"When", "Trigger", "Days Behind", "Rate", "New Plan"}
	rows := make([][]string, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		rows = append(rows, []string{
			ev.CreatedAt.Format("2006-01-02 15:04"),
			string(ev.Trigger),
			fmt.Sprintf("%d", ev.DaysBehind),
			fmt.Sprintf("%.0f%%", ev.CompletionRate*100),
			ev.NewPlanID,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func deltaLine(style lipgloss.Style, sign, label string, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return fmt.Sprintf("  %s %d %s: %s\n",
		style.Render(sign), len(ids), label, Dim(strings.Join(ids, ", ")))
}
