package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

// Clock returns the current time. Business dates are taken from its
// calendar day.
type Clock func() time.Time

// EventSink receives the events of every committed command.
type EventSink interface {
	Publish(ctx context.Context, events []domain.LedgerEvent)
}

// EventSinkFunc adapts a function to an EventSink.
type EventSinkFunc func(ctx context.Context, events []domain.LedgerEvent)

func (f EventSinkFunc) Publish(ctx context.Context, events []domain.LedgerEvent) {
	f(ctx, events)
}

// EngineOption configures a ReconciliationEngine.
type EngineOption func(*ReconciliationEngine)

// WithClock replaces the wall clock used for "today".
func WithClock(clock Clock) EngineOption {
	return func(e *ReconciliationEngine) {
		e.now = clock
	}
}

// WithEventSink publishes committed events to sink.
func WithEventSink(sink EventSink) EngineOption {
	return func(e *ReconciliationEngine) {
		e.sink = sink
	}
}

// ReconciliationEngine runs every ledger command as one unit of work and
// keeps the vendor, payroll, cheque and cashflow ledgers consistent.
type ReconciliationEngine struct {
	BaseService
	uow      portsrepo.UnitOfWork
	now      Clock
	sink     EventSink
	validate *validator.Validate
	mirrors  mirrorWriter
	cheques  *ChequeLifecycle
}

// NewReconciliationEngine creates a ReconciliationEngine over uow.
func NewReconciliationEngine(uow portsrepo.UnitOfWork, opts ...EngineOption) *ReconciliationEngine {
	e := &ReconciliationEngine{
		uow:      uow,
		now:      time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cheques = NewChequeLifecycle(e.today)
	return e
}

var _ portssvc.LedgerEngine = (*ReconciliationEngine)(nil)

func (e *ReconciliationEngine) today() time.Time {
	return domain.DateOf(e.now())
}

// run executes fn in a single unit of work. Warnings collected in outcome
// are logged and its events published once the transaction has committed.
func (e *ReconciliationEngine) run(ctx context.Context, command string, outcome *domain.Outcome, fn func(ctx context.Context, repos portsrepo.Repositories) error) error {
	err := e.uow.WithinTx(ctx, fn)
	if err != nil {
		if errors.Is(err, apperrors.ErrInternal) {
			e.LogError(ctx, err, "Ledger command failed", slog.String("command", command))
		} else {
			e.LogDebug(ctx, "Ledger command rejected", slog.String("command", command), slog.String("reason", err.Error()))
		}
		return err
	}

	for _, w := range outcome.Warnings {
		e.LogWarn(ctx, "Linked record out of sync",
			slog.String("command", command),
			slog.String("source", w.Source),
			slog.Int64("source_id", w.SourceID),
			slog.String("mirror", w.Mirror),
			slog.Int64("mirror_id", w.MirrorID),
			slog.String("detail", w.Detail))
	}
	if e.sink != nil && len(outcome.Events) > 0 {
		e.sink.Publish(ctx, outcome.Events)
	}
	e.LogDebug(ctx, "Ledger command committed", slog.String("command", command), slog.Int("events", len(outcome.Events)))
	return nil
}

func (e *ReconciliationEngine) validateRequest(req any) error {
	if err := e.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" failed '"+fe.Tag()+"'")
			}
			return apperrors.Validationf("%s", strings.Join(fields, "; "))
		}
		return apperrors.Validationf("%v", err)
	}
	return nil
}

func requirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.Validationf("%s must be greater than zero", field)
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.Validationf("%s: %v", field, err)
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDateRange turns optional YYYY-MM-DD bounds into query bounds.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	fromDate, err := parseOptionalDate("from", from)
	if err != nil {
		return nil, nil, err
	}
	toDate, err := parseOptionalDate("to", to)
	if err != nil {
		return nil, nil, err
	}
	if fromDate != nil && toDate != nil && toDate.Before(*fromDate) {
		return nil, nil, apperrors.Validationf("to must not be before from")
	}
	return fromDate, toDate, nil
}

// vendorBalance folds every transaction of the vendor as seen by repos.
func vendorBalance(ctx context.Context, repos portsrepo.Repositories, vendor *domain.Vendor) (decimal.Decimal, error) {
	txns, err := repos.VendorTransactions.ListVendorTransactions(ctx, vendor.ID, nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return VendorBalance(vendor.OpeningBalance, txns)
}
