package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/pkg/core/search"
	"github.com/jakechorley/volunteer-manager/pkg/render"
)

// SearchVolunteersCmd creates the searchVolunteers command
func SearchVolunteersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "searchVolunteers <query>",
		Short: "Show volunteers whose details contain the query (case-insensitive)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			matches := search.Filter(app.Roster.All(), query)

			app.Logger.Debug("searchVolunteers command",
				zap.String("query", query),
				zap.Int("matches", len(matches)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%d of %d volunteers match %q:\n\n", len(matches), app.Roster.Len(), query)
			fmt.Fprintln(out, render.Cards(matches, app.Theme))

			return nil
		},
	}
}
