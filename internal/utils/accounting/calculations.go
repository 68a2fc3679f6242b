package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedVendorAmount returns the effect of a vendor transaction on the
// amount payable: purchases raise it, payments and returns lower it.
func SignedVendorAmount(txn domain.VendorTransaction) (decimal.Decimal, error) {
	switch txn.Type {
	case domain.VendorPurchase:
		return txn.Amount, nil
	case domain.VendorPayment, domain.VendorReturn:
		return txn.Amount.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("unknown vendor transaction type '%s' for transaction ID %d", txn.Type, txn.ID)
}

// PayrollLoanDelta returns the effect of a payroll row on the employee's
// loan balance. Salary rows leave the balance unchanged.
func PayrollLoanDelta(typ domain.PayrollTransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch typ {
	case domain.PayrollAdvance:
		return amount, nil
	case domain.PayrollDeduction:
		return amount.Neg(), nil
	case domain.PayrollSalary:
		return decimal.Zero, nil
	}
	return decimal.Zero, fmt.Errorf("unknown payroll transaction type '%s'", typ)
}

// PayrollDebitCredit splits a payroll amount into the ledger's debit and
// credit columns. Money paid out (salary, advance) is a debit; a loan
// recovery is a credit.
func PayrollDebitCredit(typ domain.PayrollTransactionType, amount decimal.Decimal) (debit, credit decimal.Decimal, err error) {
	switch typ {
	case domain.PayrollSalary, domain.PayrollAdvance:
		return amount, decimal.Zero, nil
	case domain.PayrollDeduction:
		return decimal.Zero, amount, nil
	}
	return decimal.Zero, decimal.Zero, fmt.Errorf("unknown payroll transaction type '%s'", typ)
}
