// Package cmd provides the ledgerctl commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	coreservices "github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/sqldb"
	"github.com/SscSPs/bookkeeping_ledger/pkg/database"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	envFile string
	output  string
	debug   bool

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs ledgerctl with the process arguments and reports any error
// on stderr.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// NewRootCmd builds the ledgerctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate the bookkeeping ledger from the command line",
		Long: `ledgerctl records vendor, cheque, payroll and cashflow entries
directly against the ledger database and keeps the linked expense and cheque
records in step, exactly as the HTTP API does.

Example:
  ledgerctl migrate
  ledgerctl vendor add "Acme Traders" --opening 1000
  ledgerctl vendor txn add --vendor 1 --type payment --amount 300 --date 2024-01-05
  ledgerctl cheque list --status issued -o yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "env file to load (default .env)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", formatTable, "output format: table, json or yaml")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newMigrateCmd(a),
		newTokenCmd(a),
		newVendorCmd(a),
		newChequeCmd(a),
		newEmployeeCmd(a),
		newPayrollCmd(a),
		newIncomeCmd(a),
		newExpenseCmd(a),
		newCapitalCmd(a),
		newCategoryCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := validateFormat(a.output); err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if a.debug {
		logLevel = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(a.logger)

	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", a.envFile, err)
		}
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

// withServices opens the ledger database, runs fn against the service
// container and closes the database again.
func (a *app) withServices(ctx context.Context, fn func(ctx context.Context, svc *services.ServiceContainer) error) error {
	if a.cfg.RunMigrations {
		if err := database.Migrate(a.cfg.Dialect, a.cfg.DatabaseURL, a.logger); err != nil {
			return err
		}
	}
	db, err := database.Open(ctx, a.cfg.Dialect, a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db, a.logger)

	container, err := coreservices.NewServiceContainer(ctx, sqldb.NewUnitOfWork(db, a.cfg.Dialect))
	if err != nil {
		return err
	}
	return fn(ctx, container)
}
