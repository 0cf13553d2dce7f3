package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: code, ConstraintName: "c"})
	}

	assert.True(t, IsCheckViolation(wrap("23514")))
	assert.True(t, IsUniqueViolation(wrap("23505")))
	assert.True(t, IsForeignKeyViolation(wrap("23503")))
	assert.True(t, IsNotNullViolation(wrap("23502")))
	assert.True(t, IsInvalidInput(wrap("22P02")))

	assert.False(t, IsCheckViolation(wrap("23505")))
	assert.False(t, IsCheckViolation(errors.New("23514")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestConstraintError(t *testing.T) {
	pgErr, ok := ConstraintError(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23514", ConstraintName: "order_items_quantity_check"}))

	assert.True(t, ok)
	assert.Equal(t, "order_items_quantity_check", pgErr.ConstraintName)

	_, ok = ConstraintError(errors.New("plain"))
	assert.False(t, ok)
}
