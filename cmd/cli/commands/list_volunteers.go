package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/volunteer-manager/pkg/render"
)

// ListVolunteersCmd creates the listVolunteers command
func ListVolunteersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listVolunteers",
		Short: "List all volunteers in the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			volunteers := app.Roster.All()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nFound %d volunteers:\n\n", len(volunteers))
			fmt.Fprintln(out, render.Cards(volunteers, app.Theme))

			return nil
		},
	}
}
