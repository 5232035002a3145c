// Package sqlxrepos implements the core repositories on PostgreSQL via sqlx.
// Uniqueness rules live in the schema as unique constraints; violation errors
// are mapped back to the core sentinel errors so check-then-write races cannot
// produce duplicates.
package sqlxrepos

import (
	"errors"

	"github.com/lib/pq"
)

const pqUniqueViolation = pq.ErrorCode("23505")

// uniqueViolation reports whether err is a unique-constraint violation on the
// named constraint.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraint
	}
	return false
}
