package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subtrack/internal/infrastructure/config"
	"subtrack/internal/infrastructure/database"
	"subtrack/internal/infrastructure/migration"
	"subtrack/internal/infrastructure/persistence/seeds"
	"subtrack/internal/shared/logger"
)

var (
	env      string
	withSeed bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply the database schema and optionally seed the default plan catalog.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&withSeed, "seed", true, "Seed the default plan catalog after migrating")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := migration.Run(database.Get()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if withSeed {
		if err := seeds.SeedPlans(database.Get()); err != nil {
			return fmt.Errorf("failed to seed plans: %w", err)
		}
		logger.Info("plan catalog seeded")
	}

	return nil
}
