package postgre

import (
	"context"
	"database/sql"
)

// execPreparer is the part of *sql.Tx the bulk helpers need.
type execPreparer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}
