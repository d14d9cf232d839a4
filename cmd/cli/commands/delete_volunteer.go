package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DeleteVolunteerCmd creates the deleteVolunteer command
func DeleteVolunteerCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteVolunteer <id>",
		Short: "Remove a volunteer from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := resolveVolunteer(app, args[0])
			if err != nil {
				return err
			}

			if err := app.Roster.RemoveByID(app.Ctx, v.ID); err != nil {
				return fmt.Errorf("failed to delete volunteer: %w", err)
			}

			app.Logger.Info("Volunteer deleted", zap.String("id", v.ID), zap.String("name", v.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Deleted %s (%s)\n\n", v.Name, v.ID)

			return nil
		},
	}
}
