// Package cli implements the thesisflow command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/averhoef/thesisflow/internal/clock"
	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/service"
	"github.com/averhoef/thesisflow/internal/toolreg"
)

// App holds references to everything the CLI commands need.
type App struct {
	Plans    service.PlanService
	Progress service.ProgressService
	Replans  service.ReplanService
	Tools    *toolreg.Registry
	Policy   config.Policy
	Clock    clock.Clock

	// IsInteractive reports whether stdin is a terminal; wizards only run
	// when it is.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "thesisflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "thesisflow",
		Short: "Adaptive thesis timeline planner",
	}

	root.AddCommand(
		newInitCmd(app),
		newPlanCmd(app),
		newTodayCmd(app),
		newLogCmd(app),
		newCompleteCmd(app),
		newStatusCmd(app),
		newReplanCmd(app),
		newHistoryCmd(app),
		newToolsCmd(app),
	)

	return root
}
