package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      querier
	dialect Dialect
}

func (r *BaseRepository) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
}

func (r *BaseRepository) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
}

func (r *BaseRepository) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, r.dialect.Rebind(query), args...)
}

// insertID runs an INSERT ... RETURNING id statement.
func (r *BaseRepository) insertID(ctx context.Context, op string, query string, args ...any) (int64, error) {
	var id int64
	if err := r.queryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, r.storageErr(op, err)
	}
	return id, nil
}

// execOne runs a statement that must touch exactly one row; zero rows
// affected becomes notFound.
func (r *BaseRepository) execOne(ctx context.Context, op string, notFound error, query string, args ...any) error {
	res, err := r.exec(ctx, query, args...)
	if err != nil {
		return r.storageErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.storageErr(op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// storageErr maps driver failures onto the application taxonomy.
func (r *BaseRepository) storageErr(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrDuplicate)
	}
	return apperrors.NewAppError(500, op, err)
}

// rowErr maps sql.ErrNoRows onto notFound.
func (r *BaseRepository) rowErr(op string, err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return r.storageErr(op, err)
}

func scanAll[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
