package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by the store when a query for a single entity finds
// no row, or when the row belongs to another user. The service layer translates
// it into app_errors.ErrNotFound.
var ErrNotFound = errors.New("repository: not found")

// isForeignKeyViolation reports a Postgres 23503 error, raised when a message
// references a chat that does not exist.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
