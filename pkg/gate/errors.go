package gate

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes that mean the visibility schema has not been
// provisioned yet, as opposed to the store being unreachable.
const (
	pgUndefinedTable    = "42P01"
	pgUndefinedFunction = "42883"
	pgInvalidSchemaName = "3F000"
)

// IsNotProvisioned reports whether err looks like a missing-schema error
// ("relation/schema/function does not exist"). In development this is
// treated as allow so the app stays usable before the admin tables have
// been migrated; anywhere else it denies like any other store failure.
func IsNotProvisioned(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable, pgUndefinedFunction, pgInvalidSchemaName:
			return true
		}
	}

	// Fallback signature match for drivers that flatten the error.
	msg := err.Error()
	if !strings.Contains(msg, "does not exist") {
		return false
	}
	return strings.Contains(msg, "relation") ||
		strings.Contains(msg, "schema") ||
		strings.Contains(msg, "function")
}
