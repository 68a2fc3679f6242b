package accounting_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedVendorAmount(t *testing.T) {
	amount := decimal.NewFromInt(300)
	tests := []struct {
		typ     domain.VendorTransactionType
		want    string
		wantErr bool
	}{
		{domain.VendorPurchase, "300", false},
		{domain.VendorPayment, "-300", false},
		{domain.VendorReturn, "-300", false},
		{domain.VendorTransactionType("refund"), "0", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got, err := accounting.SignedVendorAmount(domain.VendorTransaction{Type: tt.typ, Amount: amount})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestPayrollLoanDeltaAndColumns(t *testing.T) {
	amount := decimal.NewFromInt(500)

	delta, err := accounting.PayrollLoanDelta(domain.PayrollAdvance, amount)
	require.NoError(t, err)
	assert.Equal(t, "500", delta.String())

	delta, err = accounting.PayrollLoanDelta(domain.PayrollDeduction, amount)
	require.NoError(t, err)
	assert.Equal(t, "-500", delta.String())

	delta, err = accounting.PayrollLoanDelta(domain.PayrollSalary, amount)
	require.NoError(t, err)
	assert.True(t, delta.IsZero())

	debit, credit, err := accounting.PayrollDebitCredit(domain.PayrollSalary, amount)
	require.NoError(t, err)
	assert.Equal(t, "500", debit.String())
	assert.True(t, credit.IsZero())

	debit, credit, err = accounting.PayrollDebitCredit(domain.PayrollDeduction, amount)
	require.NoError(t, err)
	assert.True(t, debit.IsZero())
	assert.Equal(t, "500", credit.String())

	_, _, err = accounting.PayrollDebitCredit(domain.PayrollTransactionType("bonus"), amount)
	assert.Error(t, err)
}
