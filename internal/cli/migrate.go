package cli

import (
	"github.com/myfans/settlement/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd, func(database *db.DB) error {
			return database.Migrate(cmd.Context())
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd, func(database *db.DB) error {
			return database.MigrateDown(cmd.Context())
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func withDatabase(cmd *cobra.Command, fn func(*db.DB) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.Connect(cmd.Context(), &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	defer database.Close()

	return fn(database)
}
