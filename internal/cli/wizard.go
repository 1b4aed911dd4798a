package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/averhoef/thesisflow/internal/cli/formatter"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/service"
)

// flowHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func flowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil || v < lo || v > hi {
			return fmt.Errorf("enter a number between %d and %d", lo, hi)
		}
		return nil
	}
}

func validateFloatRange(lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < lo || v > hi {
			return fmt.Errorf("enter a number between %g and %g", lo, hi)
		}
		return nil
	}
}

// intakeWizard runs the interactive questionnaire and fills in.
// Values already set from flags are used as form defaults.
func intakeWizard(in *service.IntakeInput) error {
	deadline := ""
	if !in.Deadline.IsZero() {
		deadline = in.Deadline.Format("2006-01-02")
	}
	dailyHours := strconv.FormatFloat(in.DailyHours, 'g', -1, 64)
	workDays := strconv.Itoa(in.WorkDaysPerWeek)
	focusMin := strconv.Itoa(in.FocusSessionMin)
	procrastination := string(in.Procrastination)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Thesis title").
				Placeholder("e.g. Attention in Vision Transformers").
				Value(&in.Name).
				Validate(validateRequired("title")),
			huh.NewSelect[string]().
				Title("Field").
				Options(
					huh.NewOption("Computer Science", "computer-science"),
					huh.NewOption("Psychology", "psychology"),
					huh.NewOption("Biology", "biology"),
					huh.NewOption("Economics", "economics"),
					huh.NewOption("Other", "generic"),
				).
				Value(&in.Field),
			huh.NewText().
				Title("What are you trying to show?").
				Placeholder("Research goal in one or two sentences").
				Value(&in.GoalDescription).
				Validate(validateRequired("goal")),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Value(&deadline).
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Hours per work day").
				Value(&dailyHours).
				Validate(validateFloatRange(0.5, 16)),
			huh.NewInput().
				Title("Work days per week").
				Value(&workDays).
				Validate(validateIntRange(1, 7)),
			huh.NewInput().
				Title("Focus session length (minutes)").
				Value(&focusMin).
				Validate(validateIntRange(15, 240)),
			huh.NewSelect[string]().
				Title("How much do you procrastinate?").
				Options(
					huh.NewOption("Rarely", "low"),
					huh.NewOption("Sometimes", "medium"),
					huh.NewOption("Constantly", "high"),
				).
				Value(&procrastination),
			huh.NewSelect[string]().
				Title("Writing style").
				Options(
					huh.NewOption("Write as I go", "incremental"),
					huh.NewOption("Research first, write late", "batch"),
				).
				Value(&in.WritingStyle),
		),
	).WithTheme(flowHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	in.Deadline, _ = time.Parse("2006-01-02", deadline)
	in.DailyHours, _ = strconv.ParseFloat(dailyHours, 64)
	in.WorkDaysPerWeek, _ = strconv.Atoi(workDays)
	in.FocusSessionMin, _ = strconv.Atoi(focusMin)
	in.Procrastination = domain.ProcrastinationLevel(procrastination)
	return nil
}

// logWizard asks for one day's numbers.
func logWizard(planned, completed, hours *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tasks planned today").
				Value(planned).
				Validate(validateIntRange(0, 100)),
			huh.NewInput().
				Title("Tasks completed").
				Value(completed).
				Validate(validateIntRange(0, 100)),
			huh.NewInput().
				Title("Hours worked").
				Value(hours).
				Validate(validateFloatRange(0, 24)),
		),
	).WithTheme(flowHuhTheme()).WithShowHelp(false)
	return form.Run()
}
