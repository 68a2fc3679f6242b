package cmd

import (
	"context"
	"text/tabwriter"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	coreservices "github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newVendorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendor",
		Short: "Manage vendor accounts and their ledgers",
	}
	cmd.AddCommand(
		newVendorAddCmd(a),
		newVendorUpdateCmd(a),
		newVendorListCmd(a),
		newVendorBalanceCmd(a),
		newVendorLedgerCmd(a),
		newVendorPayableCmd(a),
		newVendorDeleteCmd(a),
		newVendorTxnCmd(a),
	)
	return cmd
}

func (a *app) renderVendorResult(cmd *cobra.Command, result *domain.VendorResult) error {
	reportWarnings(cmd, result.Outcome)
	return a.render(cmd, result, func(tw *tabwriter.Writer) {
		row(tw, "ID", "NAME", "CONTACT", "OPENING", "BALANCE", "VERSION")
		v := result.Vendor
		row(tw, v.ID, v.Name, v.Contact, v.OpeningBalance, result.Balance, v.Version)
	})
}

func newVendorAddCmd(a *app) *cobra.Command {
	var contact, opening string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			openingBalance, err := parseAmount("opening", opening)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Vendors.CreateVendor(ctx, dto.CreateVendorRequest{
					Name:           args[0],
					Contact:        contact,
					OpeningBalance: openingBalance,
				})
				if err != nil {
					return err
				}
				return a.renderVendorResult(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&contact, "contact", "", "contact details")
	cmd.Flags().StringVar(&opening, "opening", "", "opening balance owed to the vendor")
	return cmd
}

func newVendorUpdateCmd(a *app) *cobra.Command {
	var (
		name, contact, opening string
		version                int64
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a vendor's name, contact or opening balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendorID, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := dto.UpdateVendorRequest{ExpectedVersion: version}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("contact") {
				req.Contact = &contact
			}
			if cmd.Flags().Changed("opening") {
				amount, err := parseAmount("opening", opening)
				if err != nil {
					return err
				}
				req.OpeningBalance = &amount
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Vendors.UpdateVendor(ctx, vendorID, req)
				if err != nil {
					return err
				}
				return a.renderVendorResult(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new vendor name")
	cmd.Flags().StringVar(&contact, "contact", "", "new contact details")
	cmd.Flags().StringVar(&opening, "opening", "", "new opening balance")
	cmd.Flags().Int64Var(&version, "expected-version", 0, "fail if the vendor changed since this version")
	return cmd
}

func newVendorListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vendors with their balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				vendors, err := svc.VendorQueries.ListVendors(ctx)
				if err != nil {
					return err
				}
				return a.render(cmd, vendors, func(tw *tabwriter.Writer) {
					row(tw, "ID", "NAME", "CONTACT", "BALANCE")
					for _, v := range vendors {
						row(tw, v.ID, v.Name, v.Contact, v.Balance)
					}
				})
			})
		},
	}
}

func newVendorBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance ID",
		Short: "Show what is owed to a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendorID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				balance, err := svc.VendorQueries.GetVendorBalance(ctx, vendorID)
				if err != nil {
					return err
				}
				out := struct {
					VendorID int64           `json:"vendorID"`
					Balance  decimal.Decimal `json:"balance"`
				}{vendorID, balance}
				return a.render(cmd, out, func(tw *tabwriter.Writer) {
					row(tw, "VENDOR", "BALANCE")
					row(tw, vendorID, balance)
				})
			})
		},
	}
}

func newVendorLedgerCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "ledger ID",
		Short: "Show a vendor's transactions with running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendorID, err := parseID(args[0])
			if err != nil {
				return err
			}
			fromDate, toDate, err := coreservices.ParseDateRange(from, to)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				rows, err := svc.VendorQueries.ListVendorTransactions(ctx, vendorID, fromDate, toDate)
				if err != nil {
					return err
				}
				return a.render(cmd, rows, func(tw *tabwriter.Writer) {
					row(tw, "ID", "DATE", "TYPE", "AMOUNT", "BALANCE", "MODE", "INVOICE", "DUE", "NOTE")
					for _, r := range rows {
						row(tw, r.ID, r.Date, string(r.Type), r.Amount, r.RunningBalance, r.PaymentMode, r.InvoiceNo, r.DueDate, r.Note)
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date (YYYY-MM-DD)")
	return cmd
}

func newVendorPayableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "payable",
		Short: "Show total accounts payable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				total, err := svc.VendorQueries.TotalAccountsPayable(ctx)
				if err != nil {
					return err
				}
				out := struct {
					TotalPayable decimal.Decimal `json:"totalPayable"`
				}{total}
				return a.render(cmd, out, func(tw *tabwriter.Writer) {
					row(tw, "TOTAL PAYABLE")
					row(tw, total)
				})
			})
		},
	}
}

func newVendorDeleteCmd(a *app) *cobra.Command {
	var version int64
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a vendor with all its transactions, expenses and cheques",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vendorID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				outcome, err := svc.Vendors.DeleteVendor(ctx, vendorID, version)
				if err != nil {
					return err
				}
				return a.renderOutcome(cmd, outcome)
			})
		},
	}
	cmd.Flags().Int64Var(&version, "expected-version", 0, "fail if the vendor changed since this version")
	return cmd
}

func (a *app) renderOutcome(cmd *cobra.Command, outcome *domain.Outcome) error {
	reportWarnings(cmd, *outcome)
	return a.render(cmd, outcome, func(tw *tabwriter.Writer) {
		row(tw, "EVENT", "ENTITY", "ID")
		for _, ev := range outcome.Events {
			row(tw, string(ev.Kind), ev.Entity, ev.ID)
		}
	})
}

// vendorTxnFlags are the flags shared by txn add and txn edit.
type vendorTxnFlags struct {
	txnType, amount, date, note, due, invoice, mode, terms string
	chequeBank, chequeDue                                  string
	version                                                int64
}

func (f *vendorTxnFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.txnType, "type", "", "purchase, payment or return")
	cmd.Flags().StringVar(&f.amount, "amount", "", "transaction amount")
	cmd.Flags().StringVar(&f.date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.note, "note", "", "free text note")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD), derived from --terms when empty")
	cmd.Flags().StringVar(&f.invoice, "invoice", "", "invoice number")
	cmd.Flags().StringVar(&f.mode, "mode", "", "payment mode, e.g. Cash or Bank Transfer")
	cmd.Flags().StringVar(&f.terms, "terms", "", "net terms, e.g. \"NET 30\"")
	cmd.Flags().StringVar(&f.chequeBank, "cheque-bank", "", "issue a post-dated cheque from this bank for a purchase")
	cmd.Flags().StringVar(&f.chequeDue, "cheque-due", "", "cheque due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
}

func (f *vendorTxnFlags) fields() (dto.VendorTransactionFields, error) {
	amount, err := parseAmount("amount", f.amount)
	if err != nil {
		return dto.VendorTransactionFields{}, err
	}
	fields := dto.VendorTransactionFields{
		Type:            f.txnType,
		Amount:          amount,
		Date:            f.date,
		Note:            f.note,
		DueDate:         f.due,
		InvoiceNo:       f.invoice,
		PaymentMode:     f.mode,
		NetTerms:        f.terms,
		ExpectedVersion: f.version,
	}
	if f.chequeBank != "" || f.chequeDue != "" {
		fields.Cheque = &dto.ChequeDetails{BankName: f.chequeBank, DueDate: f.chequeDue}
	}
	return fields, nil
}

func (a *app) renderVendorTxnResult(cmd *cobra.Command, result *domain.VendorTransactionResult) error {
	reportWarnings(cmd, result.Outcome)
	return a.render(cmd, result, func(tw *tabwriter.Writer) {
		t := result.Transaction
		row(tw, "ID", "VENDOR", "DATE", "TYPE", "AMOUNT", "EXPENSE", "CHEQUE", "VENDOR BALANCE")
		var expenseID, chequeID *int64
		if result.Expense != nil {
			expenseID = &result.Expense.ID
		}
		if result.Cheque != nil {
			chequeID = &result.Cheque.ID
		}
		row(tw, t.ID, t.VendorID, t.Date, string(t.Type), t.Amount, expenseID, chequeID, result.Balance)
	})
}

func newVendorTxnCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txn",
		Short: "Record, edit or delete vendor transactions",
	}

	var addFlags vendorTxnFlags
	var vendorID int64
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a purchase, payment or return",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := addFlags.fields()
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Vendors.RecordVendorTransaction(ctx, dto.RecordVendorTransactionRequest{
					VendorID:                vendorID,
					VendorTransactionFields: fields,
				})
				if err != nil {
					return err
				}
				return a.renderVendorTxnResult(cmd, result)
			})
		},
	}
	add.Flags().Int64Var(&vendorID, "vendor", 0, "vendor id")
	_ = add.MarkFlagRequired("vendor")
	addFlags.register(add)

	var editFlags vendorTxnFlags
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace every field of a vendor transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnID, err := parseID(args[0])
			if err != nil {
				return err
			}
			fields, err := editFlags.fields()
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Vendors.EditVendorTransaction(ctx, txnID, dto.EditVendorTransactionRequest{VendorTransactionFields: fields})
				if err != nil {
					return err
				}
				return a.renderVendorTxnResult(cmd, result)
			})
		},
	}
	editFlags.register(edit)
	edit.Flags().Int64Var(&editFlags.version, "expected-version", 0, "fail if the vendor changed since this version")

	var deleteVersion int64
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a vendor transaction with its expense and cheque",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Vendors.DeleteVendorTransaction(ctx, txnID, deleteVersion)
				if err != nil {
					return err
				}
				return a.renderVendorTxnResult(cmd, result)
			})
		},
	}
	del.Flags().Int64Var(&deleteVersion, "expected-version", 0, "fail if the vendor changed since this version")

	cmd.AddCommand(add, edit, del)
	return cmd
}
