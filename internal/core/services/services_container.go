package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
)

// LogEventSink writes committed ledger events to the request logger.
var LogEventSink = EventSinkFunc(func(ctx context.Context, events []domain.LedgerEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, ev := range events {
		logger.Debug("Ledger event",
			slog.String("kind", string(ev.Kind)),
			slog.String("entity", ev.Entity),
			slog.Int64("id", ev.ID),
		)
	}
})

// NewServiceContainer creates the reconciliation engine over uow, makes sure
// the reserved categories exist and wraps it in a service container.
func NewServiceContainer(ctx context.Context, uow portsrepo.UnitOfWork, opts ...EngineOption) (*portssvc.ServiceContainer, error) {
	engine := NewReconciliationEngine(uow, append([]EngineOption{WithEventSink(LogEventSink)}, opts...)...)
	if err := engine.EnsureReservedCategories(ctx); err != nil {
		return nil, err
	}
	return portssvc.NewServiceContainer(engine), nil
}
