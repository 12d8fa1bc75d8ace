package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hrms-service/internal/persistence"
)

// Sentinels returned by repositories. Raw pgx errors never leave this package.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrMissingReference = errors.New("referenced record missing")
	ErrUnavailable      = errors.New("store unavailable")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case persistence.IsUniqueViolation(err):
		return fmt.Errorf("%w (%s): %w", ErrDuplicate, persistence.ConstraintName(err), err)
	case persistence.IsForeignKeyViolation(err):
		return fmt.Errorf("%w (%s): %w", ErrMissingReference, persistence.ConstraintName(err), err)
	case persistence.IsUnavailable(err):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}
