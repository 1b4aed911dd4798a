package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/averhoef/thesisflow/internal/domain"
)

// resolveProject turns an optional positional argument into a project.
// With an argument it resolves by ID or name. Without one it uses the
// sole active project, or asks interactively when several exist.
func resolveProject(ctx context.Context, app *App, args []string) (*domain.Project, error) {
	if len(args) > 0 {
		return app.Plans.FindProject(ctx, args[0])
	}

	projects, err := app.Plans.ListProjects(ctx, false)
	if err != nil {
		return nil, err
	}
	switch len(projects) {
	case 0:
		return nil, fmt.Errorf("no projects yet; run `thesisflow init` first")
	case 1:
		return &projects[0], nil
	}

	if !app.interactive() {
		return nil, fmt.Errorf("multiple projects; pass a project name or ID")
	}

	var id string
	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(p.Name, p.ID))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which project?").
				Options(options...).
				Value(&id),
		),
	).WithTheme(flowHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return app.Plans.FindProject(ctx, id)
}
