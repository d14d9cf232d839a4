package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/pkg/core/form"
	"github.com/jakechorley/volunteer-manager/pkg/core/model"
	"github.com/jakechorley/volunteer-manager/pkg/render"
)

// EditVolunteerCmd creates the editVolunteer command
func EditVolunteerCmd(app *AppContext) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "editVolunteer <id> [flags]",
		Short: "Edit a volunteer; only the flags given are changed",
		Long: `Edit a volunteer identified by its id or a unique id prefix.
Fields whose flags are not given keep their current value. --interest adds tags,
--remove-interest removes them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := resolveVolunteer(app, args[0])
			if err != nil {
				return err
			}

			fm := form.Edit(existing, app.Cfg.Options(), func(v model.Volunteer) error {
				return app.Roster.ReplaceByID(app.Ctx, existing.ID, v)
			})

			if err := flags.apply(cmd, fm); err != nil {
				return err
			}

			saved, err := fm.Commit()
			if err != nil {
				return fmt.Errorf("failed to edit volunteer: %w", err)
			}

			app.Logger.Info("Volunteer updated", zap.String("id", saved.ID), zap.String("name", saved.Name))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Updated %s\n\n", saved.Name)
			fmt.Fprintln(out, render.Card(saved, app.Theme))

			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}
