package store

import (
	"context"
	"database/sql"
	"errors"
)

// Errors returned by store operations. Callers match them with errors.Is;
// SaveFailed and DeleteFailed wrap the underlying cause.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrSaveFailed   = errors.New("save failed")
	ErrDeleteFailed = errors.New("delete failed")
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
