package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-manager/cmd/cli/commands"
	"github.com/jakechorley/volunteer-manager/internal/config"
	"github.com/jakechorley/volunteer-manager/pkg/db"
	"github.com/jakechorley/volunteer-manager/pkg/postgres"
	"github.com/jakechorley/volunteer-manager/pkg/render"
	"github.com/jakechorley/volunteer-manager/pkg/roster"
	"github.com/jakechorley/volunteer-manager/pkg/sqlite"
	"github.com/jakechorley/volunteer-manager/pkg/utils/logging"
)

var (
	env        string
	configPath string
	themeName  string
	verbose    bool

	app     = &commands.AppContext{}
	closeDB func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Volunteer Manager CLI - Manage the volunteer roster",
		Long:  `A CLI tool for keeping a volunteer roster: add, edit, search, export and check availability.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeDB != nil {
				closeDB()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects volunteers_config.<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (overrides --env lookup)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Card theme: dark or light (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log info messages to the console")

	rootCmd.AddCommand(commands.ListVolunteersCmd(app))
	rootCmd.AddCommand(commands.SearchVolunteersCmd(app))
	rootCmd.AddCommand(commands.AddVolunteerCmd(app))
	rootCmd.AddCommand(commands.EditVolunteerCmd(app))
	rootCmd.AddCommand(commands.DeleteVolunteerCmd(app))
	rootCmd.AddCommand(commands.ExportVolunteersCmd(app))
	rootCmd.AddCommand(commands.AvailableOnCmd(app))
	rootCmd.AddCommand(commands.ToggleThemeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config, sets up the logger, opens the storage backend and loads the roster
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Now = time.Now

	// Load configuration
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, app.Cfg.LogsDir, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("storage_driver", app.Cfg.Storage.Driver))

	if themeName == "" {
		themeName = app.Cfg.Theme
	}
	app.Theme, err = render.ThemeByName(themeName)
	if err != nil {
		return err
	}

	database, err := openDatabase(app.Ctx, app.Cfg.Storage, app.Logger)
	if err != nil {
		return err
	}

	app.Logger.Info("Loading roster")
	app.Roster, err = roster.Open(app.Ctx, database, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	app.Logger.Info("Roster loaded", zap.Int("volunteers", app.Roster.Len()))

	return nil
}

// openDatabase connects the configured storage backend and records how to close it
func openDatabase(ctx context.Context, storage config.Storage, logger *zap.Logger) (db.Database, error) {
	switch storage.Driver {
	case "sqlite":
		logger.Info("Opening SQLite database", zap.String("path", storage.Path))
		sdb, err := sqlite.Open(ctx, storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		closeDB = func() { _ = sdb.Close() }
		return sdb, nil

	case "postgres":
		logger.Info("Connecting to Postgres")
		pdb, err := postgres.NewDB(ctx, storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		closeDB = pdb.Close
		if err := pdb.RunMigrations(ctx); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return pdb, nil

	default:
		logger.Info("Using roster file", zap.String("path", storage.Path))
		fdb, err := db.NewFileDB(storage.Path, storage.Format)
		if err != nil {
			return nil, err
		}
		return fdb, nil
	}
}
