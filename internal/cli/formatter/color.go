// Package formatter renders planner output for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/averhoef/thesisflow/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PlanStatusIndicator returns a colored feasibility indicator such as
// "● FEASIBLE".
func PlanStatusIndicator(status domain.PlanStatus) string {
	switch status {
	case domain.PlanFeasible:
		return StyleGreen.Render("● FEASIBLE")
	case domain.PlanInfeasible:
		return StyleRed.Render("● INFEASIBLE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// TaskStatusIndicator returns a colored marker for a task status.
func TaskStatusIndicator(status domain.TaskStatus) string {
	switch status {
	case domain.TaskComplete:
		return StyleGreen.Render("✓")
	case domain.TaskInProgress:
		return StyleYellow.Render("…")
	default:
		return StyleDim.Render("·")
	}
}

// PaceColor returns the style for a completion rate given the policy
// thresholds: green at or above good, red below behind, yellow between.
func PaceColor(rate, behindThreshold, goodThreshold float64) lipgloss.Style {
	switch {
	case rate >= goodThreshold:
		return StyleGreen
	case rate < behindThreshold:
		return StyleRed
	default:
		return StyleYellow
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
