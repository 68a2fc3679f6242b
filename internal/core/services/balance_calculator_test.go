package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, amt(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestVendorBalance(t *testing.T) {
	tests := []struct {
		name    string
		opening string
		txns    []domain.VendorTransaction
		want    string
	}{
		{name: "opening only", opening: "1000", want: "1000"},
		{
			name:    "purchase payment return",
			opening: "1000",
			txns: []domain.VendorTransaction{
				{ID: 1, Date: d("2024-01-02"), Type: domain.VendorPurchase, Amount: amt("500")},
				{ID: 2, Date: d("2024-01-03"), Type: domain.VendorPayment, Amount: amt("300")},
				{ID: 3, Date: d("2024-01-04"), Type: domain.VendorReturn, Amount: amt("50.25")},
			},
			want: "1149.75",
		},
		{
			name:    "overpaid vendor goes negative",
			opening: "0",
			txns: []domain.VendorTransaction{
				{ID: 1, Date: d("2024-01-02"), Type: domain.VendorPayment, Amount: amt("100")},
			},
			want: "-100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.VendorBalance(amt(tt.opening), tt.txns)
			require.NoError(t, err)
			assertAmount(t, tt.want, got)
		})
	}
}

func TestVendorBalance_UnknownType(t *testing.T) {
	_, err := services.VendorBalance(decimal.Zero, []domain.VendorTransaction{
		{ID: 9, Type: "refund", Amount: amt("1")},
	})
	assert.Error(t, err)
}

func TestVendorLedger_OrdersByDateThenID(t *testing.T) {
	txns := []domain.VendorTransaction{
		{ID: 3, Date: d("2024-02-01"), Type: domain.VendorPayment, Amount: amt("200")},
		{ID: 2, Date: d("2024-01-15"), Type: domain.VendorPurchase, Amount: amt("700")},
		{ID: 1, Date: d("2024-01-15"), Type: domain.VendorPurchase, Amount: amt("100")},
	}

	rows, err := services.VendorLedger(amt("50"), txns)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []int64{1, 2, 3}, []int64{rows[0].ID, rows[1].ID, rows[2].ID})
	assertAmount(t, "150", rows[0].RunningBalance)
	assertAmount(t, "850", rows[1].RunningBalance)
	assertAmount(t, "650", rows[2].RunningBalance)

	// the input slice is left in caller order
	assert.Equal(t, int64(3), txns[0].ID)
}

func TestVendorLedger_Deterministic(t *testing.T) {
	txns := []domain.VendorTransaction{
		{ID: 2, Date: d("2024-01-01"), Type: domain.VendorPurchase, Amount: amt("10")},
		{ID: 1, Date: d("2024-01-01"), Type: domain.VendorReturn, Amount: amt("4")},
	}
	first, err := services.VendorLedger(decimal.Zero, txns)
	require.NoError(t, err)
	second, err := services.VendorLedger(decimal.Zero, txns)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPayrollLedger(t *testing.T) {
	txns := []domain.PayrollTransaction{
		{ID: 3, Date: d("2024-03-10"), Type: domain.PayrollDeduction, Amount: amt("200")},
		{ID: 1, Date: d("2024-03-01"), Type: domain.PayrollAdvance, Amount: amt("500")},
		{ID: 2, Date: d("2024-03-05"), Type: domain.PayrollSalary, Amount: amt("3000")},
	}

	rows, err := services.PayrollLedger(txns)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, int64(1), rows[0].ID)
	assertAmount(t, "500", rows[0].RunningBalance)
	// salary carries the previous balance
	assertAmount(t, "500", rows[1].RunningBalance)
	assertAmount(t, "300", rows[2].RunningBalance)

	balance, err := services.PayrollBalance(txns)
	require.NoError(t, err)
	assertAmount(t, "300", balance)
}

func TestPayrollBalance_Empty(t *testing.T) {
	balance, err := services.PayrollBalance(nil)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	rows, err := services.PayrollLedger(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
