package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/averhoef/thesisflow/internal/cli/formatter"
)

func newLogCmd(app *App) *cobra.Command {
	var (
		dateFlag  string
		planned   int
		completed int
		hours     float64
	)

	cmd := &cobra.Command{
		Use:   "log [project]",
		Short: "Record today's progress",
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

			// Without explicit numbers, fall back to the wizard.
			if !cmd.Flags().Changed("planned") && app.interactive() {
				tasks, err := app.Plans.GetDailyAssignment(cmd.Context(), project.ID, date)
				if err == nil {
					planned = len(tasks)
				}
				p := strconv.Itoa(planned)
				c := strconv.Itoa(completed)
				h := strconv.FormatFloat(hours, 'g', -1, 64)
				if err := logWizard(&p, &c, &h); err != nil {
					return err
				}
				planned, _ = strconv.Atoi(p)
				completed, _ = strconv.Atoi(c)
				hours, _ = strconv.ParseFloat(h, 64)
			}

			record, err := app.Progress.RecordProgress(cmd.Context(), project.ID, date, planned, completed, hours)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %d/%d tasks, %.1fh\n",
				record.Date.Format("2006-01-02"), record.TasksCompleted, record.TasksPlanned, record.HoursWorked)

			// Logging may tip a replan trigger; surface it right away.
			trigger, fired, err := app.Progress.CheckTriggers(cmd.Context(), project.ID)
			if err == nil && fired {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTriggerHint(trigger))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Log a past day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&planned, "planned", 0, "Tasks planned for the day")
	cmd.Flags().IntVar(&completed, "done", 0, "Tasks completed")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours worked")

	return cmd
}

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [project]",
		Short: "Show progress state and pending triggers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd.Context(), app, args)
			if err != nil {
				return err
			}
			state, err := app.Progress.GetProgressState(cmd.Context(), project.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatState(project, state, app.Policy))

			trigger, fired, err := app.Progress.CheckTriggers(cmd.Context(), project.ID)
			if err == nil && fired {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTriggerHint(trigger))
			}
			return nil
		},
	}
	return cmd
}
