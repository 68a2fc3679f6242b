package cmd

import (
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/SscSPs/bookkeeping_ledger/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(a.cfg.Dialect, a.cfg.DatabaseURL, a.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s database.\n", a.cfg.Dialect)
			return nil
		},
	}
}

func newTokenCmd(a *app) *cobra.Command {
	var (
		subject string
		expiry  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if expiry <= 0 {
				expiry = a.cfg.JWTExpiryDuration
			}
			token, err := utils.GenerateJWT(subject, a.cfg.JWTSecret, expiry, a.cfg.JWTIssuer, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "operator name carried by the token")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (default JWT_EXPIRY_DURATION)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
