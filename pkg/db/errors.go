package db

import (
	"errors"
	"fmt"

	"github.com/carebridge/scheduler/pkg/core/model"
)

// ErrShiftNotFound indicates the referenced shift does not exist.
var ErrShiftNotFound = errors.New("shift not found")

// ValidationError indicates missing or malformed required fields. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError constructs a ValidationError for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError indicates the pre-commit guard found overlapping commitments.
// It carries the conflict list verbatim so callers can render why.
type ConflictError struct {
	Conflicts []model.Conflict
	Message   string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError constructs a ConflictError with a count summary message.
func NewConflictError(conflicts []model.Conflict) error {
	return &ConflictError{
		Conflicts: conflicts,
		Message:   fmt.Sprintf("found %d scheduling conflict(s)", len(conflicts)),
	}
}

// DependencyError indicates a store or directory lookup failed.
type DependencyError struct {
	Source string
	Err    error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s lookup failed: %v", e.Source, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError wraps a failed lookup with its source name.
func NewDependencyError(source string, err error) error {
	return &DependencyError{Source: source, Err: err}
}
