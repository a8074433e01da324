// Package repository provides the gorm-backed persistence layer. Each
// repository translates store-level failures (missing rows, unique-index
// violations) into the domain's sentinel errors so services never see
// driver errors.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// uniqueViolation reports whether err is a unique-constraint violation and,
// if so, which constraint was hit.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
