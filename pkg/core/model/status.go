package model

import "fmt"

// ShiftStatus is the closed set of shift lifecycle states.
type ShiftStatus string

const (
	StatusPending   ShiftStatus = "pending"
	StatusApproved  ShiftStatus = "approved"
	StatusCompleted ShiftStatus = "completed"
	StatusCancelled ShiftStatus = "cancelled"
)

// ParseShiftStatus converts a raw string into a ShiftStatus, rejecting
// anything outside the closed set.
func ParseShiftStatus(raw string) (ShiftStatus, error) {
	switch ShiftStatus(raw) {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return ShiftStatus(raw), nil
	}
	return "", fmt.Errorf("unknown shift status %q", raw)
}

// IsValid reports whether the status is one of the closed set.
func (s ShiftStatus) IsValid() bool {
	_, err := ParseShiftStatus(string(s))
	return err == nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s ShiftStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// The machine is pending -> approved -> completed, with cancelled reachable
// from pending or approved.
func (s ShiftStatus) CanTransitionTo(next ShiftStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusCancelled
	case StatusApproved:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}
