package cmd

import (
	"context"
	"text/tabwriter"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}

	var req dto.CreateEmployeeRequest
	var salary string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Salary, err = parseAmount("salary", salary); err != nil {
				return err
			}
			req.Name = args[0]
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Payroll.CreateEmployee(ctx, req)
				if err != nil {
					return err
				}
				reportWarnings(cmd, result.Outcome)
				return a.render(cmd, result, func(tw *tabwriter.Writer) {
					employeeHeader(tw)
					employeeRow(tw, result.Employee)
				})
			})
		},
	}
	add.Flags().StringVar(&req.Designation, "designation", "", "job title")
	add.Flags().StringVar(&salary, "salary", "", "monthly salary")
	add.Flags().StringVar(&req.JoiningDate, "joined", "", "joining date (YYYY-MM-DD)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List employees with their loan balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				employees, err := svc.Payroll.ListEmployees(ctx)
				if err != nil {
					return err
				}
				return a.render(cmd, employees, func(tw *tabwriter.Writer) {
					employeeHeader(tw)
					for i := range employees {
						employeeRow(tw, &employees[i])
					}
				})
			})
		},
	}

	var version int64
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee with their payroll history and its expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				outcome, err := svc.Payroll.DeleteEmployee(ctx, employeeID, version)
				if err != nil {
					return err
				}
				return a.renderOutcome(cmd, outcome)
			})
		},
	}
	del.Flags().Int64Var(&version, "expected-version", 0, "fail if the employee changed since this version")

	cmd.AddCommand(add, list, del)
	return cmd
}

func employeeHeader(tw *tabwriter.Writer) {
	row(tw, "ID", "NAME", "DESIGNATION", "SALARY", "JOINED", "LOAN BALANCE", "VERSION")
}

func employeeRow(tw *tabwriter.Writer, e *domain.Employee) {
	row(tw, e.ID, e.Name, e.Designation, e.Salary, e.JoiningDate, e.LoanBalance, e.Version)
}

type payrollTxnFlags struct {
	txnType, amount, date, notes string
	version                      int64
}

func (f *payrollTxnFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.txnType, "type", "", "salary, advance or deduction")
	cmd.Flags().StringVar(&f.amount, "amount", "", "transaction amount")
	cmd.Flags().StringVar(&f.date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free text notes")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
}

func (f *payrollTxnFlags) fields() (dto.PayrollTransactionFields, error) {
	amount, err := parseAmount("amount", f.amount)
	if err != nil {
		return dto.PayrollTransactionFields{}, err
	}
	return dto.PayrollTransactionFields{
		Type:            f.txnType,
		Amount:          amount,
		Date:            f.date,
		Notes:           f.notes,
		ExpectedVersion: f.version,
	}, nil
}

func payrollHeader(tw *tabwriter.Writer) {
	row(tw, "ID", "EMPLOYEE", "DATE", "TYPE", "DEBIT", "CREDIT", "BALANCE", "NOTES")
}

func payrollRow(tw *tabwriter.Writer, t *domain.PayrollTransaction) {
	row(tw, t.ID, t.EmployeeID, t.Date, string(t.Type), t.Debit, t.Credit, t.RunningBalance, t.Notes)
}

func (a *app) renderPayrollResult(cmd *cobra.Command, result *domain.PayrollTransactionResult) error {
	reportWarnings(cmd, result.Outcome)
	return a.render(cmd, result, func(tw *tabwriter.Writer) {
		payrollHeader(tw)
		payrollRow(tw, result.Transaction)
		if result.Deduction != nil {
			payrollRow(tw, result.Deduction)
		}
		row(tw, "", "", "", "", "", "LOAN BALANCE", result.Balance)
	})
}

func newPayrollCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Record salaries, advances and loan deductions",
	}

	var addFlags payrollTxnFlags
	var employeeID int64
	var deduction string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a payroll transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := addFlags.fields()
			if err != nil {
				return err
			}
			deductionAmount, err := parseAmount("deduction", deduction)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Payroll.RecordPayrollTransaction(ctx, dto.RecordPayrollTransactionRequest{
					EmployeeID:               employeeID,
					PayrollTransactionFields: fields,
					Deduction:                deductionAmount,
				})
				if err != nil {
					return err
				}
				return a.renderPayrollResult(cmd, result)
			})
		},
	}
	add.Flags().Int64Var(&employeeID, "employee", 0, "employee id")
	add.Flags().StringVar(&deduction, "deduction", "", "loan recovered from this salary")
	_ = add.MarkFlagRequired("employee")
	addFlags.register(add)

	var editFlags payrollTxnFlags
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace a payroll transaction",
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
				result, err := svc.Payroll.EditPayrollTransaction(ctx, txnID, dto.EditPayrollTransactionRequest{PayrollTransactionFields: fields})
				if err != nil {
					return err
				}
				return a.renderPayrollResult(cmd, result)
			})
		},
	}
	editFlags.register(edit)
	edit.Flags().Int64Var(&editFlags.version, "expected-version", 0, "fail if the employee changed since this version")

	var deleteVersion int64
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a payroll transaction and its expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Payroll.DeletePayrollTransaction(ctx, txnID, deleteVersion)
				if err != nil {
					return err
				}
				return a.renderPayrollResult(cmd, result)
			})
		},
	}
	del.Flags().Int64Var(&deleteVersion, "expected-version", 0, "fail if the employee changed since this version")

	ledger := &cobra.Command{
		Use:   "ledger EMPLOYEE_ID",
		Short: "Show an employee's payroll ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				rows, err := svc.Payroll.ListPayrollTransactions(ctx, employeeID)
				if err != nil {
					return err
				}
				return a.render(cmd, rows, func(tw *tabwriter.Writer) {
					payrollHeader(tw)
					for i := range rows {
						payrollRow(tw, &rows[i])
					}
				})
			})
		},
	}

	balance := &cobra.Command{
		Use:   "balance EMPLOYEE_ID",
		Short: "Show an employee's outstanding loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				loan, err := svc.Payroll.GetPayrollBalance(ctx, employeeID)
				if err != nil {
					return err
				}
				out := struct {
					EmployeeID  int64           `json:"employeeID"`
					LoanBalance decimal.Decimal `json:"loanBalance"`
				}{employeeID, loan}
				return a.render(cmd, out, func(tw *tabwriter.Writer) {
					row(tw, "EMPLOYEE", "LOAN BALANCE")
					row(tw, employeeID, loan)
				})
			})
		},
	}

	cmd.AddCommand(add, edit, del, ledger, balance)
	return cmd
}
