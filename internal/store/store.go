package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/choreboard/internal/database"
)

var (
	// ErrDuplicate is returned when a write violates a UNIQUE constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReference is returned when a write violates a FOREIGN KEY constraint.
	ErrReference = errors.New("foreign key constraint")
)

// wrap annotates err with op and maps constraint violations to the sentinels above.
func wrap(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %w", op, ErrReference, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type scanner interface{ Scan(...any) error }

// utc normalizes timestamps before they are written, so stored values compare
// correctly as text in SQLite.
func utc(t time.Time) time.Time {
	return t.UTC()
}
