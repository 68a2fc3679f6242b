package sqldb

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

const chequeColumns = "id, cheque_date, company_name, bank_name, due_date, amount, is_paid, paid_date, vendor_transaction_id, payment_transaction_id"

type chequeRepository struct {
	BaseRepository
}

func newChequeRepository(base BaseRepository) *chequeRepository {
	return &chequeRepository{BaseRepository: base}
}

var _ portsrepo.ChequeRepository = (*chequeRepository)(nil)

func scanCheque(row rowScanner) (domain.Cheque, error) {
	var m models.Cheque
	err := row.Scan(&m.ID, &m.ChequeDate, &m.CompanyName, &m.BankName, &m.DueDate, &m.Amount,
		&m.IsPaid, &m.PaidDate, &m.VendorTransactionID, &m.PaymentTransactionID)
	if err != nil {
		return domain.Cheque{}, err
	}
	return mapping.ToDomainCheque(m), nil
}

func (r *chequeRepository) CreateCheque(ctx context.Context, cheque domain.Cheque) (*domain.Cheque, error) {
	id, err := r.insertID(ctx, "failed to create cheque",
		`INSERT INTO cheques (cheque_date, company_name, bank_name, due_date, amount, is_paid, paid_date, vendor_transaction_id, payment_transaction_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		r.dialect.dateArg(cheque.IssueDate), cheque.PayeeName, cheque.BankName, r.dialect.nullDateArg(cheque.DueDate),
		cheque.Amount, cheque.IsPaid(), r.dialect.nullDateArg(cheque.PaidDate),
		mapping.ToNullInt64(cheque.VendorTransactionID), mapping.ToNullInt64(cheque.PaymentTransactionID))
	if err != nil {
		return nil, err
	}
	cheque.ID = id
	return &cheque, nil
}

func (r *chequeRepository) FindChequeByID(ctx context.Context, chequeID int64) (*domain.Cheque, error) {
	return r.findOne(ctx, "id", chequeID, apperrors.NotFoundf("cheque %d", chequeID))
}

func (r *chequeRepository) FindChequeByVendorTransactionID(ctx context.Context, txnID int64) (*domain.Cheque, error) {
	return r.findOne(ctx, "vendor_transaction_id", txnID, apperrors.NotFoundf("cheque for vendor transaction %d", txnID))
}

func (r *chequeRepository) FindChequeByPaymentTransactionID(ctx context.Context, txnID int64) (*domain.Cheque, error) {
	return r.findOne(ctx, "payment_transaction_id", txnID, apperrors.NotFoundf("cheque settled by vendor transaction %d", txnID))
}

func (r *chequeRepository) findOne(ctx context.Context, column string, value int64, notFound error) (*domain.Cheque, error) {
	cheque, err := scanCheque(r.queryRow(ctx, "SELECT "+chequeColumns+" FROM cheques WHERE "+column+" = ?", value))
	if err != nil {
		return nil, r.rowErr("failed to find cheque", err, notFound)
	}
	return &cheque, nil
}

func (r *chequeRepository) ListCheques(ctx context.Context, filter portsrepo.ChequeFilter) ([]domain.Cheque, error) {
	query := "SELECT " + chequeColumns + " FROM cheques"
	var args []any
	if filter.Status != nil {
		query += " WHERE is_paid = ?"
		args = append(args, *filter.Status == domain.ChequePaid)
	}
	query += " ORDER BY due_date IS NULL, due_date, id"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, r.storageErr("failed to list cheques", err)
	}
	cheques, err := scanAll(rows, scanCheque)
	if err != nil {
		return nil, r.storageErr("failed to scan cheques", err)
	}
	return cheques, nil
}

func (r *chequeRepository) UpdateCheque(ctx context.Context, cheque domain.Cheque) error {
	return r.execOne(ctx, "failed to update cheque", apperrors.NotFoundf("cheque %d", cheque.ID),
		`UPDATE cheques
		 SET cheque_date = ?, company_name = ?, bank_name = ?, due_date = ?, amount = ?, vendor_transaction_id = ?
		 WHERE id = ?`,
		r.dialect.dateArg(cheque.IssueDate), cheque.PayeeName, cheque.BankName, r.dialect.nullDateArg(cheque.DueDate),
		cheque.Amount, mapping.ToNullInt64(cheque.VendorTransactionID), cheque.ID)
}

func (r *chequeRepository) MarkChequePaid(ctx context.Context, chequeID int64, paidDate time.Time) (bool, error) {
	res, err := r.exec(ctx,
		"UPDATE cheques SET is_paid = ?, paid_date = ? WHERE id = ? AND is_paid = ?",
		true, r.dialect.dateArg(paidDate), chequeID, false)
	if err != nil {
		return false, r.storageErr("failed to mark cheque paid", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, r.storageErr("failed to mark cheque paid", err)
	}
	if n == 1 {
		return true, nil
	}
	if _, err := r.FindChequeByID(ctx, chequeID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *chequeRepository) SetChequePaymentTransaction(ctx context.Context, chequeID int64, paymentTxnID *int64) error {
	return r.execOne(ctx, "failed to link cheque payment", apperrors.NotFoundf("cheque %d", chequeID),
		"UPDATE cheques SET payment_transaction_id = ? WHERE id = ?",
		mapping.ToNullInt64(paymentTxnID), chequeID)
}

func (r *chequeRepository) DeleteCheque(ctx context.Context, chequeID int64) error {
	return r.execOne(ctx, "failed to delete cheque", apperrors.NotFoundf("cheque %d", chequeID),
		"DELETE FROM cheques WHERE id = ?", chequeID)
}
