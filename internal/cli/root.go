// Package cli wires the settlement commands: the API server and its
// operational helpers.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/myfans/settlement/internal/config"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "settlement",
	Short: "MyFans checkout and settlement service",
	Long:  `Settlement prices subscription checkouts, submits them to the Stellar network and grants time-bound content access.`,
	RunE:  runServe,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// loadConfig reads the dotenv file, if any, then the environment.
func loadConfig() (*config.Config, *slog.Logger, error) {
	_ = godotenv.Load(envFile) //nolint:errcheck // the file is optional

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return nil, nil, err
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)
	return cfg, logger, nil
}
