package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-manager/pkg/render"
)

// ToggleThemeCmd creates the toggleTheme command
func ToggleThemeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggleTheme",
		Short: "Switch between the dark and light card theme for this session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Theme = render.Toggle(app.Theme)
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", app.Theme.Name)
			return nil
		},
	}
}
