// internals/helpers/pgerr.go
package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

/* =========================
   Postgres SQLSTATE checks
========================= */

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation: 23505 (duplicate key)
func IsUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// IsRetryableTxError: 40001 serialization_failure, 40P01 deadlock_detected.
// These are the contention cases the ledger retries transparently.
func IsRetryableTxError(err error) bool {
	code := pgCode(err)
	return code == "40001" || code == "40P01"
}
