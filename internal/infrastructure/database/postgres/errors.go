package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes raised by the schema's constraints
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeInvalidTextRep      = "22P02"
)

// ConstraintError extracts the driver error behind err, if any
func ConstraintError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsCheckViolation reports a rejected CHECK constraint, such as a
// non-positive quantity or an out of range rating.
func IsCheckViolation(err error) bool {
	return hasCode(err, codeCheckViolation)
}

// IsUniqueViolation reports a duplicate email, order number or coupon code
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsForeignKeyViolation reports a reference to a missing row
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// IsNotNullViolation reports a missing required column
func IsNotNullViolation(err error) bool {
	return hasCode(err, codeNotNullViolation)
}

// IsInvalidInput reports a value the column type cannot hold, such as a
// string outside an enum's value set.
func IsInvalidInput(err error) bool {
	return hasCode(err, codeInvalidTextRep)
}

func hasCode(err error, code string) bool {
	pgErr, ok := ConstraintError(err)
	return ok && pgErr.Code == code
}
