package main

import (
	"errors"
	"fmt"
	"os"

	"expensync/internal/client"
	"expensync/internal/shared/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const sessionExpiredMessage = "Session expired. Please login again."

var (
	api   *client.Client
	flush = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "expensync",
	Short: "Track expenses, budgets and debts from the terminal",
	Long: `expensync is a command-line front end for the expensync API.

Log in once with 'expensync login'; credentials are kept in your user
config directory and refreshed automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := "warn"
		if verbose {
			level = "debug"
		}
		var err error
		if flush, err = logger.Init(level, true); err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("credentials")
		if path == "" {
			if path, err = client.DefaultCredentialsPath(); err != nil {
				return err
			}
		}
		baseURL, _ := cmd.Flags().GetString("api-url")

		api = client.New(baseURL, client.NewFileStore(path),
			client.WithLogger(zap.L()),
			client.WithLogout(func() {
				fmt.Fprintln(cmd.ErrOrStderr(), sessionExpiredMessage)
			}),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flush()
	},
}

func init() {
	rootCmd.PersistentFlags().String("api-url", envOr("EXPENSYNC_API_URL", client.DefaultBaseURL), "API base URL")
	rootCmd.PersistentFlags().String("credentials", "", "credentials file (default: user config dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(txCmd, budgetsCmd, goalsCmd, debtsCmd, remindersCmd)
	rootCmd.AddCommand(summaryCmd, pingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// The logout callback has already told the user.
		if !errors.Is(err, client.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
