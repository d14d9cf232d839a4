package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/pkg/core/form"
	"github.com/jakechorley/volunteer-manager/pkg/core/model"
	"github.com/jakechorley/volunteer-manager/pkg/render"
)

// AddVolunteerCmd creates the addVolunteer command
func AddVolunteerCmd(app *AppContext) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "addVolunteer --name <name> [flags]",
		Short: "Add a volunteer to the roster",
		Long: `Add a volunteer to the roster. Availability and experience default to the
first configured option, and the registration date defaults to now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fm := form.NewAt(app.now(), app.Cfg.Options(), func(v model.Volunteer) error {
				return app.Roster.Add(app.Ctx, v)
			})

			if err := flags.apply(cmd, fm); err != nil {
				return err
			}

			saved, err := fm.Commit()
			if err != nil {
				return fmt.Errorf("failed to add volunteer: %w", err)
			}

			app.Logger.Info("Volunteer added", zap.String("id", saved.ID), zap.String("name", saved.Name))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Added %s\n\n", saved.Name)
			fmt.Fprintln(out, render.Card(saved, app.Theme))

			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}
