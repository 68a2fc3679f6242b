package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

const vendorColumns = "id, name, contact, opening_balance, version"

type vendorRepository struct {
	BaseRepository
}

func newVendorRepository(base BaseRepository) *vendorRepository {
	return &vendorRepository{BaseRepository: base}
}

var _ portsrepo.VendorRepository = (*vendorRepository)(nil)

func scanVendor(row rowScanner) (domain.Vendor, error) {
	var m models.Vendor
	if err := row.Scan(&m.ID, &m.Name, &m.Contact, &m.OpeningBalance, &m.Version); err != nil {
		return domain.Vendor{}, err
	}
	return mapping.ToDomainVendor(m), nil
}

func (r *vendorRepository) FindVendorByID(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	v, err := scanVendor(r.queryRow(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE id = ?", vendorID))
	if err != nil {
		return nil, r.rowErr("failed to find vendor", err, apperrors.NotFoundf("vendor %d", vendorID))
	}
	return &v, nil
}

func (r *vendorRepository) FindVendorByName(ctx context.Context, name string) (*domain.Vendor, error) {
	v, err := scanVendor(r.queryRow(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE name = ?", name))
	if err != nil {
		return nil, r.rowErr("failed to find vendor by name", err, apperrors.NotFoundf("vendor named %q", name))
	}
	return &v, nil
}

func (r *vendorRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	rows, err := r.query(ctx, "SELECT "+vendorColumns+" FROM vendors ORDER BY name, id")
	if err != nil {
		return nil, r.storageErr("failed to list vendors", err)
	}
	vendors, err := scanAll(rows, scanVendor)
	if err != nil {
		return nil, r.storageErr("failed to scan vendors", err)
	}
	return vendors, nil
}

func (r *vendorRepository) CreateVendor(ctx context.Context, vendor domain.Vendor) (*domain.Vendor, error) {
	row := r.queryRow(ctx,
		"INSERT INTO vendors (name, contact, opening_balance) VALUES (?, ?, ?) RETURNING id, version",
		vendor.Name, vendor.Contact, vendor.OpeningBalance)
	if err := row.Scan(&vendor.ID, &vendor.Version); err != nil {
		return nil, r.storageErr("failed to create vendor", err)
	}
	return &vendor, nil
}

func (r *vendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	return r.execOne(ctx, "failed to update vendor", apperrors.NotFoundf("vendor %d", vendor.ID),
		"UPDATE vendors SET name = ?, contact = ?, opening_balance = ? WHERE id = ?",
		vendor.Name, vendor.Contact, vendor.OpeningBalance, vendor.ID)
}

func (r *vendorRepository) BumpVendorVersion(ctx context.Context, vendorID int64, expectedVersion int64) (int64, error) {
	return bumpVersion(ctx, &r.BaseRepository, "vendors", "vendor", vendorID, expectedVersion)
}

func (r *vendorRepository) DeleteVendor(ctx context.Context, vendorID int64) error {
	return r.execOne(ctx, "failed to delete vendor", apperrors.NotFoundf("vendor %d", vendorID),
		"DELETE FROM vendors WHERE id = ?", vendorID)
}

// bumpVersion increments the version column of an optimistic-locked table.
func bumpVersion(ctx context.Context, r *BaseRepository, table, entity string, id, expected int64) (int64, error) {
	query := "UPDATE " + table + " SET version = version + 1 WHERE id = ?"
	args := []any{id}
	if expected > 0 {
		query += " AND version = ?"
		args = append(args, expected)
	}
	query += " RETURNING version"

	var version int64
	err := r.queryRow(ctx, query, args...).Scan(&version)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, r.storageErr("failed to bump "+entity+" version", err)
	}

	var exists bool
	if err := r.queryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE id = ?)", id).Scan(&exists); err != nil {
		return 0, r.storageErr("failed to check "+entity, err)
	}
	if !exists {
		return 0, apperrors.NotFoundf("%s %d", entity, id)
	}
	return 0, fmt.Errorf("%w: %s %d is no longer at version %d", apperrors.ErrConflict, entity, id, expected)
}

type vendorTransactionRepository struct {
	BaseRepository
}

func newVendorTransactionRepository(base BaseRepository) *vendorTransactionRepository {
	return &vendorTransactionRepository{BaseRepository: base}
}

var _ portsrepo.VendorTransactionRepository = (*vendorTransactionRepository)(nil)

const vendorTransactionColumns = "id, vendor_id, date, type, amount, note, due_date, invoice_no, payment_mode, net_terms"

func scanVendorTransaction(row rowScanner) (domain.VendorTransaction, error) {
	var m models.VendorTransaction
	err := row.Scan(&m.ID, &m.VendorID, &m.Date, &m.Type, &m.Amount, &m.Note,
		&m.DueDate, &m.InvoiceNo, &m.PaymentMode, &m.NetTerms)
	if err != nil {
		return domain.VendorTransaction{}, err
	}
	return mapping.ToDomainVendorTransaction(m), nil
}

func (r *vendorTransactionRepository) CreateVendorTransaction(ctx context.Context, txn domain.VendorTransaction) (*domain.VendorTransaction, error) {
	id, err := r.insertID(ctx, "failed to create vendor transaction",
		`INSERT INTO vendor_transactions (vendor_id, date, type, amount, note, due_date, invoice_no, payment_mode, net_terms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		txn.VendorID, r.dialect.dateArg(txn.Date), string(txn.Type), txn.Amount, txn.Note,
		r.dialect.nullDateArg(txn.DueDate), txn.InvoiceNo, txn.PaymentMode, txn.NetTerms)
	if err != nil {
		return nil, err
	}
	txn.ID = id
	return &txn, nil
}

func (r *vendorTransactionRepository) FindVendorTransactionByID(ctx context.Context, txnID int64) (*domain.VendorTransaction, error) {
	txn, err := scanVendorTransaction(r.queryRow(ctx,
		"SELECT "+vendorTransactionColumns+" FROM vendor_transactions WHERE id = ?", txnID))
	if err != nil {
		return nil, r.rowErr("failed to find vendor transaction", err, apperrors.NotFoundf("vendor transaction %d", txnID))
	}
	return &txn, nil
}

func (r *vendorTransactionRepository) ListVendorTransactions(ctx context.Context, vendorID int64, from, to *time.Time) ([]domain.VendorTransaction, error) {
	query := "SELECT " + vendorTransactionColumns + " FROM vendor_transactions WHERE vendor_id = ?"
	args := []any{vendorID}
	if from != nil {
		query += " AND date >= ?"
		args = append(args, r.dialect.dateArg(*from))
	}
	if to != nil {
		query += " AND date <= ?"
		args = append(args, r.dialect.dateArg(*to))
	}
	query += " ORDER BY date, id"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, r.storageErr("failed to list vendor transactions", err)
	}
	txns, err := scanAll(rows, scanVendorTransaction)
	if err != nil {
		return nil, r.storageErr("failed to scan vendor transactions", err)
	}
	return txns, nil
}

func (r *vendorTransactionRepository) UpdateVendorTransaction(ctx context.Context, txn domain.VendorTransaction) error {
	return r.execOne(ctx, "failed to update vendor transaction", apperrors.NotFoundf("vendor transaction %d", txn.ID),
		`UPDATE vendor_transactions
		 SET date = ?, type = ?, amount = ?, note = ?, due_date = ?, invoice_no = ?, payment_mode = ?, net_terms = ?
		 WHERE id = ?`,
		r.dialect.dateArg(txn.Date), string(txn.Type), txn.Amount, txn.Note, r.dialect.nullDateArg(txn.DueDate),
		txn.InvoiceNo, txn.PaymentMode, txn.NetTerms, txn.ID)
}

func (r *vendorTransactionRepository) DeleteVendorTransaction(ctx context.Context, txnID int64) error {
	return r.execOne(ctx, "failed to delete vendor transaction", apperrors.NotFoundf("vendor transaction %d", txnID),
		"DELETE FROM vendor_transactions WHERE id = ?", txnID)
}
