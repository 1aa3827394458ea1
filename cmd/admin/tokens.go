package main

import (
	"fmt"
	"time"

	"expensync/internal/domain/session"
	"expensync/internal/infrastructure/postgres"
	"expensync/internal/shared/auth"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Refresh token maintenance",
}

var tokensPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired and revoked refresh tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		issuer := auth.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
		sessions := session.NewService(postgres.NewUserRepository(db), postgres.NewRefreshTokenRepository(db), issuer)

		n, err := sessions.PurgeExpired(ctx)
		if err != nil {
			return fmt.Errorf("purge refresh tokens: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Purged %d refresh token(s)\n", n)
		return nil
	},
}

func init() {
	tokensPurgeCmd.Flags().Duration("timeout", 5*time.Minute, "timeout for the purge")
	tokensCmd.AddCommand(tokensPurgeCmd)
}
