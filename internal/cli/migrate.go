package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/crud-backends/internal/observability"
	"github.com/spec-kit/crud-backends/internal/persistence"
	"github.com/spec-kit/crud-backends/internal/persistence/migrations"
)

func newMigrateCommand() *cobra.Command {
	var (
		app  string
		down bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded migrations of one backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Postgres.DSN == "" {
				return fmt.Errorf("POSTGRES_DSN is required to migrate %s", app)
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			files, err := migrations.For(app)
			if err != nil {
				return err
			}
			direction := persistence.MigrateUp
			if down {
				direction = persistence.MigrateDown
			}
			logger.Info("running migrations", zap.String("app", app), zap.Bool("down", down))
			return persistence.RunMigrations(cfg.Postgres.DSN, files, direction, logger)
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "Backend whose schema to migrate (fyyur, trivia, coffee)")
	cmd.Flags().BoolVar(&down, "down", false, "Roll back every migration instead of applying them")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}
