package main

import (
	"context"
	"fmt"
	"os"

	"expensync/internal/infrastructure/postgres"
	"expensync/internal/shared/config"
	"expensync/internal/shared/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg   *config.Config
	flush = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Management commands for the expensync API",
	Long: `Management commands for the expensync API.

Reads the same environment (or .env file) as the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		flush, err = logger.Init(cfg.Log.Level, cfg.Log.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flush()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, remindersCmd, tokensCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB connects using the loaded configuration.
func openDB() (*postgres.DB, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	zap.L().Debug("connected to database", zap.String("db", cfg.Database.DBName))
	return db, nil
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return context.WithTimeout(cmd.Context(), timeout)
}
