package apierr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes surfaced by constraint enforcement.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromDB translates a storage error into the API taxonomy. Unique-index
// violations become conflicts; a foreign-key violation is a conflict when a
// referenced row is still in use and a validation error when an inserted
// referent is missing. Anything unrecognized stays a 500. Uniqueness is never
// pre-checked in application code, so this is the only place duplicate slugs
// and duplicate edge triples are caught.
func FromDB(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("record not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("duplicate key")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Conflict("duplicate value violates unique constraint %q", pgErr.ConstraintName)
		case pgForeignKeyViolation:
			// Postgres phrases the two directions differently:
			// "insert or update on table ..." means the referent is
			// missing, "update or delete on table ..." means the row is
			// still referenced.
			if strings.HasPrefix(pgErr.Message, "insert or update") {
				return Validation("referenced row does not exist (constraint %q)", pgErr.ConstraintName)
			}
			return Conflict("operation violates foreign key constraint %q", pgErr.ConstraintName)
		}
	}
	return Internal(err)
}
