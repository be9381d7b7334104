package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

// Postgres SQLSTATE codes for constraint failures.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
)

// translate turns a gorm/pgx error into the application taxonomy. notFound is
// returned for gorm.ErrRecordNotFound; op prefixes unexpected errors.
func translate(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return httperr.ErrIntegrity("duplicate_entry", err)
		case pgForeignKeyViolation:
			return httperr.ErrIntegrity("foreign_key_violation", err)
		case pgExclusionViolation:
			return httperr.ErrIntegrity("exclusion_violation", err)
		case pgNotNullViolation, pgCheckViolation:
			return httperr.ErrIntegrity("integrity_violation", err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// IsUniqueViolation reports whether err comes from a unique index.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
