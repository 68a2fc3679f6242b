package cmd

import (
	"context"
	"text/tabwriter"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	coreservices "github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/spf13/cobra"
)

func dateRangeFlags(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVar(from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(to, "to", "", "last date (YYYY-MM-DD)")
}

func (a *app) renderCashflowResult(cmd *cobra.Command, result *domain.CashflowResult) error {
	reportWarnings(cmd, result.Outcome)
	return a.render(cmd, result, func(tw *tabwriter.Writer) {
		row(tw, "KIND", "ID", "DATE", "AMOUNT", "CATEGORY", "DESCRIPTION")
		if e := result.Income; e != nil {
			row(tw, "income", e.ID, e.Date, e.Amount, e.CategoryName, e.Description)
		}
		if e := result.Expense; e != nil {
			row(tw, "expense", e.ID, e.Date, e.Amount, e.CategoryName, e.Description)
		}
		if e := result.Capital; e != nil {
			row(tw, "capital", e.ID, e.Date, e.Amount, e.Category, e.Description)
		}
	})
}

type entryFlags struct {
	date, amount, category, description, notes string
	categoryID                                 int64
}

func (f *entryFlags) register(cmd *cobra.Command, withCategory bool) {
	cmd.Flags().StringVar(&f.date, "date", "", "entry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "entry amount")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")
	if withCategory {
		cmd.Flags().StringVar(&f.category, "category", "", "category name, created when missing")
		cmd.Flags().Int64Var(&f.categoryID, "category-id", 0, "category id")
		cmd.MarkFlagsOneRequired("category", "category-id")
	}
}

func newIncomeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record and list income",
	}

	var addFlags entryFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Record income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", addFlags.amount)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.RecordIncome(ctx, dto.IncomeRequest{
					Date:         addFlags.date,
					Amount:       amount,
					CategoryID:   addFlags.categoryID,
					CategoryName: addFlags.category,
					Description:  addFlags.description,
					Notes:        addFlags.notes,
				})
				if err != nil {
					return err
				}
				return a.renderCashflowResult(cmd, result)
			})
		},
	}
	addFlags.register(add, true)

	var from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := coreservices.ParseDateRange(from, to)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				rows, err := svc.Cashflow.ListIncome(ctx, fromDate, toDate)
				if err != nil {
					return err
				}
				return a.render(cmd, rows, func(tw *tabwriter.Writer) {
					row(tw, "ID", "DATE", "AMOUNT", "CATEGORY", "DESCRIPTION", "NOTES")
					for _, e := range rows {
						row(tw, e.ID, e.Date, e.Amount, e.CategoryName, e.Description, e.Notes)
					}
				})
			})
		},
	}
	dateRangeFlags(list, &from, &to)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an income row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			incomeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.DeleteIncome(ctx, incomeID)
				if err != nil {
					return err
				}
				return a.renderCashflowResult(cmd, result)
			})
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

func newExpenseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and page through the expense ledger",
	}

	var addFlags entryFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a manual expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", addFlags.amount)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.RecordExpense(ctx, dto.ExpenseRequest{
					Date:         addFlags.date,
					Amount:       amount,
					CategoryID:   addFlags.categoryID,
					CategoryName: addFlags.category,
					Description:  addFlags.description,
					Notes:        addFlags.notes,
				})
				if err != nil {
					return err
				}
				return a.renderCashflowResult(cmd, result)
			})
		},
	}
	addFlags.register(add, true)

	var params dto.ListExpensesParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List expenses in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				page, err := svc.Cashflow.ListExpenses(ctx, params)
				if err != nil {
					return err
				}
				return a.render(cmd, page, func(tw *tabwriter.Writer) {
					row(tw, "ID", "DATE", "AMOUNT", "CATEGORY", "DESCRIPTION", "NOTES", "VENDOR TXN", "PAYROLL TXN")
					for _, e := range page.Items {
						row(tw, e.ID, e.Date, e.Amount, e.CategoryName, e.Description, e.Notes, e.VendorTransactionID, e.PayrollTransactionID)
					}
					if page.NextPageToken != "" {
						row(tw, "next:", page.NextPageToken)
					}
				})
			})
		},
	}
	dateRangeFlags(list, &params.From, &params.To)
	list.Flags().IntVar(&params.Limit, "limit", 0, "page size")
	list.Flags().StringVar(&params.NextToken, "token", "", "token from the previous page")

	var editFlags entryFlags
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace a manual expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expenseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", editFlags.amount)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.EditExpense(ctx, expenseID, dto.ExpenseRequest{
					Date:         editFlags.date,
					Amount:       amount,
					CategoryID:   editFlags.categoryID,
					CategoryName: editFlags.category,
					Description:  editFlags.description,
					Notes:        editFlags.notes,
				})
				if err != nil {
					return err
				}
				return a.renderCashflowResult(cmd, result)
			})
		},
	}
	editFlags.register(edit, true)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a manual expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expenseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.DeleteExpense(ctx, expenseID)
				if err != nil {
					return err
				}
				return a.renderCashflowResult(cmd, result)
			})
		},
	}

	cmd.AddCommand(add, list, edit, del)
	return cmd
}

func newCapitalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capital",
		Short: "Record and list additional capital",
	}

	var addFlags entryFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Record additional capital",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", addFlags.amount)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.RecordCapital(ctx, dto.CapitalRequest{
					Date:        addFlags.date,
					Amount:      amount,
					Description: addFlags.description,
					Notes:       addFlags.notes,
				})
				if err != nil {
					return err
				}
				return a.renderCashflowResult(cmd, result)
			})
		},
	}
	addFlags.register(add, false)

	var from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List capital entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := coreservices.ParseDateRange(from, to)
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				rows, err := svc.Cashflow.ListCapital(ctx, fromDate, toDate)
				if err != nil {
					return err
				}
				return a.render(cmd, rows, func(tw *tabwriter.Writer) {
					row(tw, "ID", "DATE", "AMOUNT", "DESCRIPTION", "NOTES")
					for _, e := range rows {
						row(tw, e.ID, e.Date, e.Amount, e.Description, e.Notes)
					}
				})
			})
		},
	}
	dateRangeFlags(list, &from, &to)

	cmd.AddCommand(add, list)
	return cmd
}

func parseCategoryKind(arg string) (domain.CategoryKind, error) {
	switch kind := domain.CategoryKind(arg); kind {
	case domain.ExpenseCategory, domain.IncomeCategory:
		return kind, nil
	}
	return "", errCategoryKind
}

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage expense and income categories",
	}

	list := &cobra.Command{
		Use:       "list KIND",
		Short:     "List expense or income categories",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.ExpenseCategory), string(domain.IncomeCategory)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseCategoryKind(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				categories, err := svc.Cashflow.ListCategories(ctx, kind)
				if err != nil {
					return err
				}
				return a.render(cmd, categories, func(tw *tabwriter.Writer) {
					row(tw, "ID", "NAME")
					for _, c := range categories {
						row(tw, c.ID, c.Name)
					}
				})
			})
		},
	}

	add := &cobra.Command{
		Use:   "add KIND NAME",
		Short: "Create a category, or return the existing one with that name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseCategoryKind(args[0])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.EnsureCategory(ctx, kind, dto.CreateCategoryRequest{Name: args[1]})
				if err != nil {
					return err
				}
				return a.renderCategoryResult(cmd, result)
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename KIND ID NAME",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseCategoryKind(args[0])
			if err != nil {
				return err
			}
			categoryID, err := parseID(args[1])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.RenameCategory(ctx, kind, categoryID, dto.RenameCategoryRequest{Name: args[2]})
				if err != nil {
					return err
				}
				return a.renderCategoryResult(cmd, result)
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete KIND ID",
		Short: "Delete a category together with its entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseCategoryKind(args[0])
			if err != nil {
				return err
			}
			categoryID, err := parseID(args[1])
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(ctx context.Context, svc *services.ServiceContainer) error {
				result, err := svc.Cashflow.DeleteCategory(ctx, kind, categoryID)
				if err != nil {
					return err
				}
				return a.renderCategoryResult(cmd, result)
			})
		},
	}

	cmd.AddCommand(list, add, rename, del)
	return cmd
}

func (a *app) renderCategoryResult(cmd *cobra.Command, result *domain.CategoryResult) error {
	reportWarnings(cmd, result.Outcome)
	return a.render(cmd, result, func(tw *tabwriter.Writer) {
		row(tw, "ID", "NAME", "KIND", "ENTRIES REMOVED")
		row(tw, result.Category.ID, result.Category.Name, string(result.Category.Kind), result.EntriesRemoved)
	})
}
