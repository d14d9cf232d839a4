package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/pkg/flatfile"
)

// ErrNothingToExport is returned when exporting an empty roster
var ErrNothingToExport = errors.New("no volunteers to export")

// ExportVolunteersCmd creates the exportVolunteers command
func ExportVolunteersCmd(app *AppContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "exportVolunteers <path>",
		Short: "Write the roster to a CSV or JSON file",
		Long: `Write the whole roster to the given path. The format is taken from --format,
or from the file extension when --format is not given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			volunteers := app.Roster.All()
			if len(volunteers) == 0 {
				return ErrNothingToExport
			}

			codec, err := flatfile.CodecFor(format, path)
			if err != nil {
				return err
			}

			if err := flatfile.Save(path, codec, volunteers); err != nil {
				return fmt.Errorf("failed to export volunteers: %w", err)
			}

			app.Logger.Info("Roster exported",
				zap.String("path", path),
				zap.String("format", codec.Name()),
				zap.Int("count", len(volunteers)))
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Exported %d volunteers to %s\n\n", len(volunteers), path)

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: csv or json (default: from extension)")

	return cmd
}
