package services

import (
	"cmp"
	"slices"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// sortedVendorTransactions returns a copy of txns ordered by (date, id).
func sortedVendorTransactions(txns []domain.VendorTransaction) []domain.VendorTransaction {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b domain.VendorTransaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

func sortedPayrollTransactions(txns []domain.PayrollTransaction) []domain.PayrollTransaction {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b domain.PayrollTransaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

// VendorBalance folds a vendor's transactions onto its opening balance.
func VendorBalance(opening decimal.Decimal, txns []domain.VendorTransaction) (decimal.Decimal, error) {
	balance := opening
	for _, txn := range txns {
		signed, err := accounting.SignedVendorAmount(txn)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}
	return balance, nil
}

// VendorLedger returns the transactions in (date, id) order, each with the
// balance after it.
func VendorLedger(opening decimal.Decimal, txns []domain.VendorTransaction) ([]domain.VendorLedgerRow, error) {
	rows := make([]domain.VendorLedgerRow, 0, len(txns))
	balance := opening
	for _, txn := range sortedVendorTransactions(txns) {
		signed, err := accounting.SignedVendorAmount(txn)
		if err != nil {
			return nil, err
		}
		balance = balance.Add(signed)
		rows = append(rows, domain.VendorLedgerRow{VendorTransaction: txn, RunningBalance: balance})
	}
	return rows, nil
}

// PayrollLedger replays payroll rows in (date, id) order and returns copies
// with RunningBalance set to the loan balance after each row. Salary rows
// carry the previous balance.
func PayrollLedger(txns []domain.PayrollTransaction) ([]domain.PayrollTransaction, error) {
	rows := sortedPayrollTransactions(txns)
	balance := decimal.Zero
	for i := range rows {
		delta, err := accounting.PayrollLoanDelta(rows[i].Type, rows[i].Amount)
		if err != nil {
			return nil, err
		}
		balance = balance.Add(delta)
		rows[i].RunningBalance = balance
	}
	return rows, nil
}

// PayrollBalance is the outstanding loan: advances minus deductions.
func PayrollBalance(txns []domain.PayrollTransaction) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, txn := range txns {
		delta, err := accounting.PayrollLoanDelta(txn.Type, txn.Amount)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(delta)
	}
	return balance, nil
}
