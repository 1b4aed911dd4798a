package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/averhoef/thesisflow/internal/cli/formatter"
	"github.com/averhoef/thesisflow/internal/clock"
)

func newPlanCmd(app *App) *cobra.Command {
	var withTasks bool

	cmd := &cobra.Command{
		Use:   "plan [project]",
		Short: "Show the current plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd.Context(), app, args)
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetCurrentPlan(cmd.Context(), project.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(project, plan, withTasks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withTasks, "tasks", false, "List every task under its phase")

	return cmd
}

func newTodayCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "today [project]",
		Short: "Show the tasks assigned to today",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd.Context(), app, args)
			if err != nil {
				return err
			}

			date := app.Clock.Today()
			if dateFlag != "" {
				date, err = parseDateFlag(dateFlag)
				if err != nil {
					return err
				}
			}

			tasks, err := app.Plans.GetDailyAssignment(cmd.Context(), project.ID, date)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDailyTasks(date.Format("2006-01-02"), tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Show a different day (YYYY-MM-DD)")

	return cmd
}

func newCompleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <task-id> [project]",
		Short: "Mark a task of the current plan complete",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd.Context(), app, args[1:])
			if err != nil {
				return err
			}
			if err := app.Plans.CompleteTask(cmd.Context(), project.ID, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✓ ")+args[0])
			return nil
		},
	}
	return cmd
}

func parseDateFlag(s string) (t time.Time, err error) {
	t, err = time.Parse("2006-01-02", s)
	if err != nil {
		return t, fmt.Errorf("parsing --date: %w", err)
	}
	return clock.Midnight(t), nil
}
