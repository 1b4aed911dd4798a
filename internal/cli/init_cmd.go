package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/averhoef/thesisflow/internal/cli/formatter"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/service"
)

func newInitCmd(app *App) *cobra.Command {
	in := service.IntakeInput{
		Field:           "generic",
		Timezone:        "UTC",
		DailyHours:      4,
		WorkDaysPerWeek: 5,
		FocusSessionMin: 45,
		Procrastination: domain.ProcrastinationMedium,
		WritingStyle:    "incremental",
	}
	var deadline string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project and generate its first plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deadline != "" {
				d, err := time.Parse("2006-01-02", deadline)
				if err != nil {
					return fmt.Errorf("parsing --deadline: %w", err)
				}
				in.Deadline = d
			}

			// Missing required answers come from the wizard when the
			// terminal allows it.
			needsWizard := in.Name == "" || in.GoalDescription == "" || in.Deadline.IsZero()
			if needsWizard {
				if !app.interactive() {
					return fmt.Errorf("--name, --goal and --deadline are required in non-interactive mode")
				}
				if err := intakeWizard(&in); err != nil {
					return err
				}
			}

			res, err := app.Plans.GeneratePlan(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(res.Project, res.Plan, false))
			if res.Plan.Status == domain.PlanInfeasible {
				fmt.Fprintln(cmd.OutOrStdout(),
					formatter.Dim("  The plan was not saved. Adjust the deadline or your weekly hours and re-run init."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Thesis title")
	cmd.Flags().StringVar(&in.Field, "field", in.Field, "Research field (computer-science|psychology|biology|economics|generic)")
	cmd.Flags().StringVar(&in.GoalDescription, "goal", "", "Research goal description")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Submission deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Timezone, "timezone", in.Timezone, "IANA timezone name")
	cmd.Flags().Float64Var(&in.DailyHours, "daily-hours", in.DailyHours, "Hours available per work day")
	cmd.Flags().IntVar(&in.WorkDaysPerWeek, "work-days", in.WorkDaysPerWeek, "Work days per week (1-7)")
	cmd.Flags().IntVar(&in.FocusSessionMin, "focus-min", in.FocusSessionMin, "Focus session length in minutes")
	cmd.Flags().StringVar((*string)(&in.Procrastination), "procrastination", string(in.Procrastination), "Procrastination level (low|medium|high)")
	cmd.Flags().StringVar(&in.WritingStyle, "writing-style", in.WritingStyle, "Writing style (incremental|batch)")

	return cmd
}
