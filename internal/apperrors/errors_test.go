package apperrors_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_UnwrapsCauseAndInternal(t *testing.T) {
	err := apperrors.NewAppError(500, "failed to begin transaction", sql.ErrConnDone)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, "failed to begin transaction: "+sql.ErrConnDone.Error(), err.Error())
}

func TestAppError_ClientCodeIsNotInternal(t *testing.T) {
	err := apperrors.NewAppError(400, "bad input", nil)

	assert.False(t, errors.Is(err, apperrors.ErrInternal))
	assert.Equal(t, "bad input", err.Error())
}

func TestReconciliationMismatchError_MatchesSentinel(t *testing.T) {
	var err error = &apperrors.ReconciliationMismatchError{
		Source:   "vendor_transaction",
		SourceID: 7,
		Mirror:   "expense",
		Detail:   "no expense entry references this payment",
	}
	wrapped := fmt.Errorf("edit payment: %w", err)

	assert.ErrorIs(t, wrapped, apperrors.ErrReconciliationMismatch)

	var mismatch *apperrors.ReconciliationMismatchError
	assert.True(t, errors.As(wrapped, &mismatch))
	assert.Equal(t, int64(7), mismatch.SourceID)
}

func TestFormattedSentinels(t *testing.T) {
	assert.ErrorIs(t, apperrors.Validationf("amount must be positive"), apperrors.ErrValidation)
	assert.ErrorIs(t, apperrors.NotFoundf("vendor %d", 3), apperrors.ErrNotFound)
	assert.ErrorIs(t, apperrors.Duplicatef("income on %s", "2024-05-01"), apperrors.ErrDuplicate)
	assert.Contains(t, apperrors.NotFoundf("vendor %d", 3).Error(), "vendor 3")
}
