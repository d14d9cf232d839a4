package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/pkg/core/services"
	"github.com/jakechorley/volunteer-manager/pkg/render"
)

// AvailableOnCmd creates the availableOn command
func AvailableOnCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "availableOn <YYYY-MM-DD>",
		Short: "List volunteers whose availability covers the given date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
			}

			app.Logger.Debug("availableOn command", zap.String("date", args[0]))

			available, err := services.AvailableOn(app.Roster.All(), app.Cfg.AvailabilityOptions, date, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%d volunteers available on %s:\n\n", len(available), date.Format("Monday 02 Jan 2006"))
			fmt.Fprintln(out, render.Cards(available, app.Theme))

			return nil
		},
	}
}
