package formatter

import (
	"fmt"
	"strings"

	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/progress"
)

// FormatState renders the progress state summary with the policy context
// needed to color the pace line.
func FormatState(project *domain.Project, state progress.State, policy config.Policy) string {
	var b strings.Builder

	b.WriteString(Header("Status: "+project.Name) + "\n")

	pace := PaceColor(state.CompletionRate, policy.BehindThreshold, policy.GoodThreshold)
	b.WriteString(fmt.Sprintf("  Completion rate (%dd): %s %s\n",
		policy.LookbackDays,
		RenderProgress(state.CompletionRate, 12),
		pace.Render(paceLabel(state.CompletionRate, policy))))

	behind := fmt.Sprintf("%d", state.DaysBehind)
	if state.DaysBehind >= policy.DaysBehindTrigger {
		behind = StyleRed.Render(behind)
	}
	b.WriteString(fmt.Sprintf("  Days behind:          %s\n", behind))
	b.WriteString(fmt.Sprintf("  Streak:               %s\n", streakLabel(state.Streak)))

	return b.String()
}

// FormatTriggerHint renders the pending-replan notice shown after logging
// progress when a trigger condition holds.
func FormatTriggerHint(trigger domain.ReplanTrigger) string {
	var reason string
	switch trigger {
	case domain.TriggerDaysBehind:
		reason = "several days behind schedule"
	case domain.TriggerCompletionRate:
		reason = "completion rate has stayed low"
	default:
		return ""
	}
	return StyleYellow.Render("  ⚠ Replan suggested: "+reason) + Dim("  (run `thesisflow replan`)")
}

func paceLabel(rate float64, policy config.Policy) string {
	switch {
	case rate >= policy.GoodThreshold:
		return "on pace"
	case rate < policy.BehindThreshold:
		return "behind"
	default:
		return "slipping"
	}
}

func streakLabel(streak int) string {
	switch {
	case streak <= 0:
		return Dim("none")
	case streak == 1:
		return StyleGreen.Render("1 day")
	default:
		return StyleGreen.Render(fmt.Sprintf("%d days", streak))
	}
}
