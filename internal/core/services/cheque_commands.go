package services

import (
	"context"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

// IssueCheque issues a cheque that is not tied to a purchase.
func (e *ReconciliationEngine) IssueCheque(ctx context.Context, req dto.IssueChequeRequest) (*domain.ChequeResult, error) {
	req.PayeeName = strings.TrimSpace(req.PayeeName)
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	issueDate, err := parseDate("issueDate", req.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseOptionalDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}

	result := &domain.ChequeResult{}
	err = e.run(ctx, "IssueCheque", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		cheque, err := e.cheques.Issue(ctx, repos, domain.Cheque{
			IssueDate: issueDate,
			PayeeName: req.PayeeName,
			BankName:  strings.TrimSpace(req.BankName),
			DueDate:   dueDate,
			Amount:    req.Amount,
		})
		if err != nil {
			return err
		}
		result.Cheque = cheque
		result.Record(domain.EventCreated, domain.EntityCheque, cheque.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MarkChequePaid settles a cheque; see ChequeLifecycle.MarkPaid.
func (e *ReconciliationEngine) MarkChequePaid(ctx context.Context, chequeID int64) (*domain.ChequePaymentResult, error) {
	var result *domain.ChequePaymentResult
	outcome := &domain.Outcome{}
	err := e.run(ctx, "MarkChequePaid", outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		result, err = e.cheques.MarkPaid(ctx, repos, chequeID, outcome)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Outcome = *outcome
	return result, nil
}

// DeleteCheque removes a cheque row. Deleting a paid cheque keeps the
// payment and expense its settlement wrote.
func (e *ReconciliationEngine) DeleteCheque(ctx context.Context, chequeID int64) (*domain.ChequeResult, error) {
	result := &domain.ChequeResult{}
	err := e.run(ctx, "DeleteCheque", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		cheque, kept, err := e.cheques.Delete(ctx, repos, chequeID, &result.Outcome)
		if err != nil {
			return err
		}
		result.Cheque = cheque
		result.PaidRecordsKept = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetCheque returns a cheque.
func (e *ReconciliationEngine) GetCheque(ctx context.Context, chequeID int64) (*domain.Cheque, error) {
	return e.uow.Reader().Cheques.FindChequeByID(ctx, chequeID)
}

// ListCheques returns the cheque register with days remaining and the
// total still due.
func (e *ReconciliationEngine) ListCheques(ctx context.Context, params dto.ListChequesParams) (*domain.ChequeListing, error) {
	if err := e.validateRequest(params); err != nil {
		return nil, err
	}
	status, err := parseChequeStatus(params.Status)
	if err != nil {
		return nil, err
	}
	cheques, err := e.uow.Reader().Cheques.ListCheques(ctx, portsrepo.ChequeFilter{Status: status})
	if err != nil {
		return nil, err
	}
	return e.cheques.Listing(cheques), nil
}
