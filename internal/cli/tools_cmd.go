package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/averhoef/thesisflow/internal/cli/formatter"
	"github.com/averhoef/thesisflow/internal/toolreg"
)

func newToolsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Research helper tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Tools"))
			for _, name := range app.Tools.Names() {
				tool, err := app.Tools.Get(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n",
					formatter.Bold(name), formatter.Dim(tool.Description()))
			}
			return nil
		},
	}

	cmd.AddCommand(newToolsRunCmd(app))
	return cmd
}

func newToolsRunCmd(app *App) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "run <tool>",
		Short: "Invoke a tool with key=value parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := make(toolreg.Params, len(params))
			for _, kv := range params {
				key, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("parameter %q is not key=value", kv)
				}
				p[key] = value
			}

			res, err := app.Tools.Invoke(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Tool parameter as key=value (repeatable)")

	return cmd
}
