package matching

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
)

// AvailabilityResult reports whether a worker is free for a proposed window,
// with every overlapping commitment that was found.
type AvailabilityResult struct {
	IsAvailable bool
	Conflicts   []model.Conflict
}

// ShiftFinder is the slice of the shift store the overlap checks need.
type ShiftFinder interface {
	FindOverlapping(ctx context.Context, ref model.WorkerRef, start, end time.Time, excludeID string) ([]model.Shift, error)
}

// TimerFinder looks up a worker's running timer.
type TimerFinder interface {
	FindRunning(ctx context.Context, email string) (*model.ActiveTimer, error)
}

// AssignmentFinder looks up a worker's active legacy assignments.
type AssignmentFinder interface {
	FindActiveByEmail(ctx context.Context, email string) ([]model.ClientAssignment, error)
}

// Checker answers availability questions by consulting three independent
// commitment sources: scheduled shifts, running timers, and legacy per-client
// schedule slots. The sources are independently owned records; none is
// assumed to agree with the others and all three are equally authoritative.
type Checker struct {
	shifts      ShiftFinder
	timers      TimerFinder
	assignments AssignmentFinder
	logger      *zap.Logger
}

// NewChecker creates an availability checker over the three commitment stores.
func NewChecker(shifts ShiftFinder, timers TimerFinder, assignments AssignmentFinder, logger *zap.Logger) *Checker {
	return &Checker{
		shifts:      shifts,
		timers:      timers,
		assignments: assignments,
		logger:      logger,
	}
}

// CheckAvailability runs all three commitment checks for the worker and
// aggregates every conflict found. It never short-circuits: a worker blocked
// by a shift is still checked against timers and legacy assignments so the
// caller sees the full picture.
//
// On any lookup failure the check fails closed: the worker is reported
// unavailable with a synthetic conflict describing the error. A failed lookup
// must never silently allow a double-booking.
func (c *Checker) CheckAvailability(ctx context.Context, ref model.WorkerRef, start, end time.Time) AvailabilityResult {
	var conflicts []model.Conflict

	conflicts = append(conflicts, c.checkShifts(ctx, ref, start, end)...)
	conflicts = append(conflicts, c.checkTimer(ctx, ref, end)...)
	conflicts = append(conflicts, c.checkAssignments(ctx, ref, start, end)...)

	c.logger.Debug("Availability checked",
		zap.String("worker_id", ref.ID),
		zap.String("worker_email", ref.Email),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("conflicts", len(conflicts)))

	return AvailabilityResult{
		IsAvailable: len(conflicts) == 0,
		Conflicts:   conflicts,
	}
}

func (c *Checker) checkShifts(ctx context.Context, ref model.WorkerRef, start, end time.Time) []model.Conflict {
	overlapping, err := c.shifts.FindOverlapping(ctx, ref, start, end, "")
	if err != nil {
		c.logger.Warn("Shift lookup failed, treating worker as unavailable", zap.Error(err))
		return []model.Conflict{lookupFailureConflict("shift store", err)}
	}

	// The store may prefilter, but the canonical overlap test applied here
	// is authoritative.
	conflicts := make([]model.Conflict, 0, len(overlapping))
	for _, shift := range overlapping {
		if intervalsOverlap(start, end, shift.StartTime, shift.EndTime) {
			conflicts = append(conflicts, shiftConflict(shift))
		}
	}
	return conflicts
}

// checkTimer blocks any window that is not entirely before a running timer's
// start. A running timer has no end, so it blocks everything after it starts.
func (c *Checker) checkTimer(ctx context.Context, ref model.WorkerRef, end time.Time) []model.Conflict {
	if ref.Email == "" {
		return nil
	}

	timer, err := c.timers.FindRunning(ctx, ref.Email)
	if err != nil {
		c.logger.Warn("Timer lookup failed, treating worker as unavailable", zap.Error(err))
		return []model.Conflict{lookupFailureConflict("timer store", err)}
	}
	if timer == nil {
		return nil
	}

	if !timer.StartTime.After(end) {
		return []model.Conflict{{
			Source: model.ConflictSourceTimer,
			Detail: fmt.Sprintf("worker clocked in for %s since %s",
				timer.ClientEmail,
				timer.StartTime.UTC().Format(time.RFC3339)),
		}}
	}
	return nil
}

func (c *Checker) checkAssignments(ctx context.Context, ref model.WorkerRef, start, end time.Time) []model.Conflict {
	if ref.Email == "" {
		return nil
	}

	assignments, err := c.assignments.FindActiveByEmail(ctx, ref.Email)
	if err != nil {
		c.logger.Warn("Legacy assignment lookup failed, treating worker as unavailable", zap.Error(err))
		return []model.Conflict{lookupFailureConflict("legacy assignment store", err)}
	}

	return assignmentConflicts(assignments, start, end)
}

func lookupFailureConflict(source string, err error) model.Conflict {
	return model.Conflict{
		Source: model.ConflictSourceLookupFailure,
		Detail: fmt.Sprintf("%s unavailable: %v", source, err),
	}
}
