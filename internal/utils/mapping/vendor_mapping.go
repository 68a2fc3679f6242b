package mapping

import (
	"database/sql"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

// ToDomainVendor converts a vendors row to a domain Vendor.
func ToDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		ID:             m.ID,
		Name:           m.Name,
		Contact:        m.Contact,
		OpeningBalance: m.OpeningBalance,
		Version:        m.Version,
	}
}

// ToDomainVendorTransaction converts a vendor_transactions row.
func ToDomainVendorTransaction(m models.VendorTransaction) domain.VendorTransaction {
	return domain.VendorTransaction{
		ID:          m.ID,
		VendorID:    m.VendorID,
		Date:        m.Date.Time,
		Type:        domain.VendorTransactionType(m.Type),
		Amount:      m.Amount,
		Note:        m.Note,
		DueDate:     m.DueDate.Ptr(),
		InvoiceNo:   m.InvoiceNo,
		PaymentMode: m.PaymentMode,
		NetTerms:    m.NetTerms,
	}
}

// ToDomainCheque converts a cheques row, translating the legacy is_paid flag.
func ToDomainCheque(m models.Cheque) domain.Cheque {
	status := domain.ChequeIssued
	if m.IsPaid {
		status = domain.ChequePaid
	}
	return domain.Cheque{
		ID:                   m.ID,
		IssueDate:            m.ChequeDate.Time,
		PayeeName:            m.CompanyName,
		BankName:             m.BankName,
		DueDate:              m.DueDate.Ptr(),
		Amount:               m.Amount,
		Status:               status,
		PaidDate:             m.PaidDate.Ptr(),
		VendorTransactionID:  nullInt64Ptr(m.VendorTransactionID),
		PaymentTransactionID: nullInt64Ptr(m.PaymentTransactionID),
	}
}

// ToNullInt64 converts an optional id for writing.
func ToNullInt64(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
