// Package repository provides data access layer implementations for the settlement service.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/myfans/settlement/internal/models"
)

const uniqueViolation = "23505"

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx so repositories can be
// scoped to a transaction by the service that owns it.
type DBTX interface {
	sqlx.ExtContext
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf(format+": %w", append(args, models.ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// isUniqueViolation recognises a unique constraint failure from either
// registered driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
