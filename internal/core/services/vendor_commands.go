package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// CreateVendor opens a vendor account.
func (e *ReconciliationEngine) CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*domain.VendorResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}

	result := &domain.VendorResult{}
	err := e.run(ctx, "CreateVendor", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		vendor, err := repos.Vendors.CreateVendor(ctx, domain.Vendor{
			Name:           req.Name,
			Contact:        strings.TrimSpace(req.Contact),
			OpeningBalance: req.OpeningBalance,
		})
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.Duplicatef("vendor %q already exists", req.Name)
		}
		if err != nil {
			return err
		}
		result.Vendor = vendor
		result.Balance = vendor.OpeningBalance
		result.Record(domain.EventCreated, domain.EntityVendor, vendor.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateVendor changes vendor details. A rename is carried to the vendor's
// payment mirrors and unpaid purchase cheques.
func (e *ReconciliationEngine) UpdateVendor(ctx context.Context, vendorID int64, req dto.UpdateVendorRequest) (*domain.VendorResult, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}

	result := &domain.VendorResult{}
	err := e.run(ctx, "UpdateVendor", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		version, err := repos.Vendors.BumpVendorVersion(ctx, vendorID, req.ExpectedVersion)
		if err != nil {
			return err
		}
		vendor, err := repos.Vendors.FindVendorByID(ctx, vendorID)
		if err != nil {
			return err
		}
		oldName := vendor.Name
		if req.Name != nil {
			vendor.Name = strings.TrimSpace(*req.Name)
		}
		if req.Contact != nil {
			vendor.Contact = strings.TrimSpace(*req.Contact)
		}
		if req.OpeningBalance != nil {
			vendor.OpeningBalance = *req.OpeningBalance
		}
		vendor.Version = version

		err = repos.Vendors.UpdateVendor(ctx, *vendor)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.Duplicatef("vendor %q already exists", vendor.Name)
		}
		if err != nil {
			return err
		}
		result.Record(domain.EventUpdated, domain.EntityVendor, vendor.ID)

		txns, err := repos.VendorTransactions.ListVendorTransactions(ctx, vendor.ID, nil, nil)
		if err != nil {
			return err
		}
		if vendor.Name != oldName {
			if err := e.renameVendorMirrors(ctx, repos, vendor, txns, &result.Outcome); err != nil {
				return err
			}
		}

		balance, err := VendorBalance(vendor.OpeningBalance, txns)
		if err != nil {
			return err
		}
		result.Vendor = vendor
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *ReconciliationEngine) renameVendorMirrors(ctx context.Context, repos portsrepo.Repositories, vendor *domain.Vendor, txns []domain.VendorTransaction, outcome *domain.Outcome) error {
	for i := range txns {
		txn := &txns[i]
		switch txn.Type {
		case domain.VendorPayment:
			if _, err := e.mirrors.syncVendorExpense(ctx, repos, vendor, txn, true, outcome); err != nil {
				return err
			}
		case domain.VendorPurchase:
			cheque, err := repos.Cheques.FindChequeByVendorTransactionID(ctx, txn.ID)
			if missing, err := notFound(err); err != nil {
				return err
			} else if missing || cheque.IsPaid() {
				continue
			}
			cheque.PayeeName = vendor.Name
			if err := repos.Cheques.UpdateCheque(ctx, *cheque); err != nil {
				return err
			}
			outcome.Record(domain.EventUpdated, domain.EntityCheque, cheque.ID)
		}
	}
	return nil
}

// DeleteVendor removes the vendor with all of its transactions and their
// mirrors.
func (e *ReconciliationEngine) DeleteVendor(ctx context.Context, vendorID int64, expectedVersion int64) (*domain.Outcome, error) {
	outcome := &domain.Outcome{}
	err := e.run(ctx, "DeleteVendor", outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Vendors.BumpVendorVersion(ctx, vendorID, expectedVersion); err != nil {
			return err
		}
		txns, err := repos.VendorTransactions.ListVendorTransactions(ctx, vendorID, nil, nil)
		if err != nil {
			return err
		}
		for i := range txns {
			if err := e.mirrors.removeVendorTransaction(ctx, repos, &txns[i], outcome); err != nil {
				return err
			}
		}
		if err := repos.Vendors.DeleteVendor(ctx, vendorID); err != nil {
			return err
		}
		outcome.Record(domain.EventDeleted, domain.EntityVendor, vendorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// vendorTransactionInput is a validated VendorTransactionFields.
type vendorTransactionInput struct {
	txn    domain.VendorTransaction
	cheque *chequeDetails
}

func (e *ReconciliationEngine) parseVendorTransaction(fields dto.VendorTransactionFields) (*vendorTransactionInput, error) {
	if err := e.validateRequest(fields); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", fields.Amount); err != nil {
		return nil, err
	}
	date, err := parseDate("date", fields.Date)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseOptionalDate("dueDate", fields.DueDate)
	if err != nil {
		return nil, err
	}

	typ := domain.VendorTransactionType(fields.Type)
	in := &vendorTransactionInput{txn: domain.VendorTransaction{
		Date:        date,
		Type:        typ,
		Amount:      fields.Amount,
		Note:        strings.TrimSpace(fields.Note),
		DueDate:     dueDate,
		InvoiceNo:   strings.TrimSpace(fields.InvoiceNo),
		PaymentMode: strings.TrimSpace(fields.PaymentMode),
		NetTerms:    strings.TrimSpace(fields.NetTerms),
	}}
	if in.txn.DueDate == nil {
		if days, ok := domain.NetTermsDays(in.txn.NetTerms); ok {
			due := date.AddDate(0, 0, days)
			in.txn.DueDate = &due
		}
	}

	if fields.Cheque != nil {
		if typ != domain.VendorPurchase {
			return nil, apperrors.Validationf("cheque details only apply to purchases")
		}
		chequeDue, err := parseOptionalDate("cheque.dueDate", fields.Cheque.DueDate)
		if err != nil {
			return nil, err
		}
		in.cheque = &chequeDetails{BankName: strings.TrimSpace(fields.Cheque.BankName), DueDate: chequeDue}
	}
	return in, nil
}

// RecordVendorTransaction writes a purchase, payment or return with its
// mirrors.
func (e *ReconciliationEngine) RecordVendorTransaction(ctx context.Context, req dto.RecordVendorTransactionRequest) (*domain.VendorTransactionResult, error) {
	if req.VendorID <= 0 {
		return nil, apperrors.Validationf("vendorID is required")
	}
	in, err := e.parseVendorTransaction(req.VendorTransactionFields)
	if err != nil {
		return nil, err
	}

	result := &domain.VendorTransactionResult{}
	err = e.run(ctx, "RecordVendorTransaction", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Vendors.BumpVendorVersion(ctx, req.VendorID, req.ExpectedVersion); err != nil {
			return err
		}
		vendor, err := repos.Vendors.FindVendorByID(ctx, req.VendorID)
		if err != nil {
			return err
		}

		in.txn.VendorID = vendor.ID
		txn, err := repos.VendorTransactions.CreateVendorTransaction(ctx, in.txn)
		if err != nil {
			return err
		}
		result.Record(domain.EventCreated, domain.EntityVendorTransaction, txn.ID)

		return e.finishVendorWrite(ctx, repos, vendor, txn, false, in.cheque, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EditVendorTransaction replaces a vendor transaction and brings its
// mirrors in line with the new values.
func (e *ReconciliationEngine) EditVendorTransaction(ctx context.Context, txnID int64, req dto.EditVendorTransactionRequest) (*domain.VendorTransactionResult, error) {
	in, err := e.parseVendorTransaction(req.VendorTransactionFields)
	if err != nil {
		return nil, err
	}

	result := &domain.VendorTransactionResult{}
	err = e.run(ctx, "EditVendorTransaction", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		old, err := repos.VendorTransactions.FindVendorTransactionByID(ctx, txnID)
		if err != nil {
			return err
		}
		if _, err := repos.Vendors.BumpVendorVersion(ctx, old.VendorID, req.ExpectedVersion); err != nil {
			return err
		}
		vendor, err := repos.Vendors.FindVendorByID(ctx, old.VendorID)
		if err != nil {
			return err
		}

		txn := in.txn
		txn.ID = old.ID
		txn.VendorID = old.VendorID
		if old.Type == domain.VendorPayment && txn.Type != domain.VendorPayment {
			if err := e.mirrors.detachSettledCheque(ctx, repos, &txn, &result.Outcome); err != nil {
				return err
			}
		}
		if err := repos.VendorTransactions.UpdateVendorTransaction(ctx, txn); err != nil {
			return err
		}
		result.Record(domain.EventUpdated, domain.EntityVendorTransaction, txn.ID)

		return e.finishVendorWrite(ctx, repos, vendor, &txn, old.Type == domain.VendorPayment, in.cheque, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// finishVendorWrite reconciles mirrors and reads the balance back inside
// the same unit of work.
func (e *ReconciliationEngine) finishVendorWrite(ctx context.Context, repos portsrepo.Repositories, vendor *domain.Vendor, txn *domain.VendorTransaction, wasPayment bool, cheque *chequeDetails, result *domain.VendorTransactionResult) error {
	expense, err := e.mirrors.syncVendorExpense(ctx, repos, vendor, txn, wasPayment, &result.Outcome)
	if err != nil {
		return err
	}
	linked, err := e.mirrors.syncPurchaseCheque(ctx, repos, vendor, txn, cheque, &result.Outcome)
	if err != nil {
		return err
	}
	balance, err := vendorBalance(ctx, repos, vendor)
	if err != nil {
		return err
	}
	result.Transaction = txn
	result.Expense = expense
	result.Cheque = linked
	result.Balance = balance
	return nil
}

// DeleteVendorTransaction removes a vendor transaction and everything
// generated from it.
func (e *ReconciliationEngine) DeleteVendorTransaction(ctx context.Context, txnID int64, expectedVersion int64) (*domain.VendorTransactionResult, error) {
	result := &domain.VendorTransactionResult{}
	err := e.run(ctx, "DeleteVendorTransaction", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		txn, err := repos.VendorTransactions.FindVendorTransactionByID(ctx, txnID)
		if err != nil {
			return err
		}
		if _, err := repos.Vendors.BumpVendorVersion(ctx, txn.VendorID, expectedVersion); err != nil {
			return err
		}
		vendor, err := repos.Vendors.FindVendorByID(ctx, txn.VendorID)
		if err != nil {
			return err
		}
		if err := e.mirrors.removeVendorTransaction(ctx, repos, txn, &result.Outcome); err != nil {
			return err
		}
		balance, err := vendorBalance(ctx, repos, vendor)
		if err != nil {
			return err
		}
		result.Transaction = txn
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetVendor returns a vendor with its derived balance.
func (e *ReconciliationEngine) GetVendor(ctx context.Context, vendorID int64) (*domain.VendorSummary, error) {
	repos := e.uow.Reader()
	vendor, err := repos.Vendors.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	balance, err := vendorBalance(ctx, repos, vendor)
	if err != nil {
		return nil, err
	}
	return &domain.VendorSummary{Vendor: *vendor, Balance: balance}, nil
}

// ListVendors returns every vendor with its derived balance.
func (e *ReconciliationEngine) ListVendors(ctx context.Context) ([]domain.VendorSummary, error) {
	repos := e.uow.Reader()
	vendors, err := repos.Vendors.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.VendorSummary, 0, len(vendors))
	for i := range vendors {
		balance, err := vendorBalance(ctx, repos, &vendors[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, domain.VendorSummary{Vendor: vendors[i], Balance: balance})
	}
	return summaries, nil
}

// GetVendorBalance derives the vendor's amount payable.
func (e *ReconciliationEngine) GetVendorBalance(ctx context.Context, vendorID int64) (decimal.Decimal, error) {
	summary, err := e.GetVendor(ctx, vendorID)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Balance, nil
}

// ListVendorTransactions returns the vendor's ledger. Running balances are
// computed over the full history, then rows outside [from, to] are dropped.
func (e *ReconciliationEngine) ListVendorTransactions(ctx context.Context, vendorID int64, from, to *time.Time) ([]domain.VendorLedgerRow, error) {
	repos := e.uow.Reader()
	vendor, err := repos.Vendors.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	txns, err := repos.VendorTransactions.ListVendorTransactions(ctx, vendorID, nil, to)
	if err != nil {
		return nil, err
	}
	ledger, err := VendorLedger(vendor.OpeningBalance, txns)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return ledger, nil
	}
	rows := make([]domain.VendorLedgerRow, 0, len(ledger))
	for _, row := range ledger {
		if !row.Date.Before(*from) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// TotalAccountsPayable sums what is owed to vendors. Vendors in credit
// count as zero.
func (e *ReconciliationEngine) TotalAccountsPayable(ctx context.Context) (decimal.Decimal, error) {
	summaries, err := e.ListVendors(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, s := range summaries {
		if s.Balance.IsPositive() {
			total = total.Add(s.Balance)
		}
	}
	return total, nil
}
