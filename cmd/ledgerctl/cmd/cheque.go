package cmd

import (
	"context"
	"text/tabwriter"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/spf13/cobra"
)

func newChequeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cheque",
		Short: "Manage the post-dated cheque register",
	}
	cmd.AddCommand(
		newChequeIssueCmd(a),
		newChequeListCmd(a),
		newChequePayCmd(a),
		newChequeDeleteCmd(a),
	)
	return cmd
}

func chequeRow(tw *tabwriter.Writer, c *domain.Cheque) {
	row(tw, c.ID, c.IssueDate, c.PayeeName, c.BankName, c.DueDate, c.Amount, string(c.Status), c.PaidDate)
}

func chequeHeader(tw *tabwriter.Writer) {
	row(tw, "ID", "ISSUED", "PAYEE", "BANK", "DUE", "AMOUNT", "STATUS", "PAID")
}

func (a *app) renderChequeResult(cmd *cobra.Command, result *domain.ChequeResult) error {
	reportWarnings(cmd, result.Outcome)
	return a.render(cmd, result, func(tw *tabwriter.Writer) {
		chequeHeader(tw)
		chequeRow(tw, result.Cheque)
	})
}

func newChequeIssueCmd(a *app) *cobra.Command {
	var req dto.IssueChequeRequest
	var amount string
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a standalone cheque",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cheques.IssueCheque(ctx, req)
				if err != nil {
					return err
				}
				return a.renderChequeResult(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&req.PayeeName, "payee", "", "payee name, matched against vendor names on payment")
	cmd.Flags().StringVar(&req.BankName, "bank", "", "bank the cheque is drawn on")
	cmd.Flags().StringVar(&req.IssueDate, "date", "", "issue date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&amount, "amount", "", "cheque amount")
	_ = cmd.MarkFlagRequired("payee")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newChequeListCmd(a *app) *cobra.Command {
	var params dto.ListChequesParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cheques with days remaining and the total due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				listing, err := svc.Cheques.ListCheques(ctx, params)
				if err != nil {
					return err
				}
				return a.render(cmd, listing, func(tw *tabwriter.Writer) {
					row(tw, "ID", "ISSUED", "PAYEE", "BANK", "DUE", "AMOUNT", "STATUS", "DAYS LEFT")
					for _, c := range listing.Cheques {
						days := cell(c.DaysRemaining)
						if c.Overdue {
							days = "overdue"
						}
						row(tw, c.ID, c.IssueDate, c.PayeeName, c.BankName, c.DueDate, c.Amount, string(c.Status), days)
					}
					row(tw, "", "", "", "", "TOTAL DUE", listing.TotalDue)
				})
			})
		},
	}
	cmd.Flags().StringVar(&params.Status, "status", "", "only show issued or paid cheques")
	return cmd
}

func newChequePayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pay ID",
		Short: "Mark a cheque paid and record the vendor payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chequeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cheques.MarkChequePaid(ctx, chequeID)
				if err != nil {
					return err
				}
				reportWarnings(cmd, result.Outcome)
				return a.render(cmd, result, func(tw *tabwriter.Writer) {
					row(tw, "CHEQUE", "PAID", "PAYMENT", "VENDOR BALANCE", "NOTE")
					var paymentID *int64
					if result.Payment != nil {
						paymentID = &result.Payment.ID
					}
					note := ""
					switch {
					case result.AlreadyPaid:
						note = "already paid"
					case result.Unmirrored:
						note = "no vendor matches the payee"
					}
					row(tw, result.Cheque.ID, result.Cheque.PaidDate, paymentID, result.VendorBalance, note)
				})
			})
		},
	}
}

func newChequeDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a cheque",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chequeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cheques.DeleteCheque(ctx, chequeID)
				if err != nil {
					return err
				}
				if result.PaidRecordsKept {
					a.logger.Warn("Deleted a paid cheque; its payment and expense stay on the ledger", "cheque_id", chequeID)
				}
				return a.renderChequeResult(cmd, result)
			})
		},
	}
}
