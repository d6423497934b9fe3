package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("duplicate key")
)

const pqUniqueViolation = "23505"

// mapError translates driver errors into the package sentinels so callers can
// use errors.Is without knowing which engine is behind the repository.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return errors.Join(ErrDuplicate, err)
	}

	// modernc.org/sqlite doesn't export typed constraint errors
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return errors.Join(ErrDuplicate, err)
	}

	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}
