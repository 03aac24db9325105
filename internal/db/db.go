package db

import (
	"context"
	"database/sql"
)

// Querier and Execer are satisfied by both *sql.DB and *sql.Tx so
// repositories can run the same statements inside or outside the
// booking transaction.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
