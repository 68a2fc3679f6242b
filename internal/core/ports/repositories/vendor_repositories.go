package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// VendorReader defines read operations for vendor accounts.
type VendorReader interface {
	FindVendorByID(ctx context.Context, vendorID int64) (*domain.Vendor, error)

	// FindVendorByName matches the stored name exactly.
	FindVendorByName(ctx context.Context, name string) (*domain.Vendor, error)

	ListVendors(ctx context.Context) ([]domain.Vendor, error)
}

// VendorWriter defines write operations for vendor accounts.
type VendorWriter interface {
	CreateVendor(ctx context.Context, vendor domain.Vendor) (*domain.Vendor, error)
	UpdateVendor(ctx context.Context, vendor domain.Vendor) error

	// BumpVendorVersion increments the row version and returns the new value.
	// A non-zero expectedVersion that no longer matches yields ErrConflict.
	BumpVendorVersion(ctx context.Context, vendorID int64, expectedVersion int64) (int64, error)

	DeleteVendor(ctx context.Context, vendorID int64) error
}

// VendorRepository combines vendor reads and writes.
type VendorRepository interface {
	VendorReader
	VendorWriter
}

// VendorTransactionRepository persists purchases, payments and returns.
type VendorTransactionRepository interface {
	CreateVendorTransaction(ctx context.Context, txn domain.VendorTransaction) (*domain.VendorTransaction, error)
	FindVendorTransactionByID(ctx context.Context, txnID int64) (*domain.VendorTransaction, error)

	// ListVendorTransactions returns rows ordered by (date, id). Nil bounds are open.
	ListVendorTransactions(ctx context.Context, vendorID int64, from, to *time.Time) ([]domain.VendorTransaction, error)

	UpdateVendorTransaction(ctx context.Context, txn domain.VendorTransaction) error
	DeleteVendorTransaction(ctx context.Context, txnID int64) error
}
