package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averhoef/thesisflow/internal/cli/formatter"
	"github.com/averhoef/thesisflow/internal/domain"
)

func newReplanCmd(app *App) *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "replan [project]",
		Short: "Rebuild the plan around what actually happened",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd.Context(), app, args)
			if err != nil {
				return err
			}

			reason := domain.TriggerManual
			if auto {
				trigger, fired, err := app.Progress.CheckTriggers(cmd.Context(), project.ID)
				if err != nil {
					return err
				}
				if !fired {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No trigger condition holds; nothing to do."))
					return nil
				}
				reason = trigger
			}

			res, err := app.Replans.TriggerReplan(cmd.Context(), project.ID, reason)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReplanResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "Replan only if a trigger condition holds, using its reason")

	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [project]",
		Short: "Show the replan audit log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd.Context(), app, args)
			if err != nil {
				return err
			}
			events, err := app.Replans.ListReplanEvents(cmd.Context(), project.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReplanEvents(events))
			return nil
		},
	}
	return cmd
}
