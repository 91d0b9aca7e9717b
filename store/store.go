package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// querier is satisfied by both *sql.DB and *sql.Tx so guard queries can
// run inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// pairKey canonicalizes an unordered user pair. Relationships and
// conversations are keyed by it, so direction never matters for lookups.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

func userExists(ctx context.Context, q querier, id string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", id,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// requireUser maps a missing user to KindNotFound before any mutation runs.
func requireUser(ctx context.Context, q querier, id string) error {
	exists, err := userExists(ctx, q, id)
	if err != nil {
		return unavailable("check user", err)
	}
	if !exists {
		return NotFoundf("user %s not found", id)
	}
	return nil
}

// isDuplicateEntry recognizes unique-key violations from the MySQL driver
// and from SQLite, which backs the test suite.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
