package services

import (
	"errors"

	"github.com/diewo77/madafacture/internal/validation"
)

var (
	// ErrNothingToClose signals a correct "nothing to do" state, not a
	// defect: closing a date requires at least one transaction.
	ErrNothingToClose = errors.New("nothing_to_close")
	// ErrClosingExists is returned when a closing already exists for the
	// date and the caller did not confirm the destructive replace.
	ErrClosingExists = errors.New("closing_already_exists")
)

// ValidationError carries field violations detected before any write.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return "validation_failed" }
