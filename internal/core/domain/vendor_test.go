package domain_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNetTermsDays(t *testing.T) {
	tests := []struct {
		name   string
		terms  string
		want   int
		wantOK bool
	}{
		{name: "spaced", terms: "NET 30", want: 30, wantOK: true},
		{name: "lower case no space", terms: "net60", want: 60, wantOK: true},
		{name: "padded", terms: "  Net 90 ", want: 90, wantOK: true},
		{name: "empty", terms: "", wantOK: false},
		{name: "not net", terms: "COD", wantOK: false},
		{name: "zero days", terms: "NET 0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.NetTermsDays(tt.terms)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentNotes(t *testing.T) {
	assert.Equal(t, "Paid via Cash", domain.PaymentNotes("Cash"))
	assert.Equal(t, "Paid via Bank Transfer", domain.PaymentNotes(" Bank Transfer "))
	assert.Equal(t, "Paid via Other", domain.PaymentNotes(""))
}

func TestVendorTransactionType_Valid(t *testing.T) {
	assert.True(t, domain.VendorPurchase.Valid())
	assert.True(t, domain.VendorPayment.Valid())
	assert.True(t, domain.VendorReturn.Valid())
	assert.False(t, domain.VendorTransactionType("refund").Valid())
}
