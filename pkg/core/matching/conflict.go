package matching

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

// ConflictReport is the pre-commit guard's verdict on a proposed shift.
type ConflictReport struct {
	HasConflict bool
	Conflicts   []model.Conflict
	Message     string
}

// Detector is the pre-commit conflict guard run before a shift create or
// update is persisted. It applies the same overlap semantics as the
// availability checker's shift and legacy-assignment checks, with support for
// excluding the shift being edited so an update does not conflict with its
// own prior self.
type Detector struct {
	shifts      ShiftFinder
	assignments AssignmentFinder
	logger      *zap.Logger
}

// NewDetector creates a conflict detector over the shift and legacy stores.
func NewDetector(shifts ShiftFinder, assignments AssignmentFinder, logger *zap.Logger) *Detector {
	return &Detector{
		shifts:      shifts,
		assignments: assignments,
		logger:      logger,
	}
}

// DetectConflicts checks the proposed window against existing shifts and
// legacy schedule slots. Unlike the availability checker it surfaces lookup
// failures as errors: the guard runs immediately before persistence, and a
// write must not proceed on an unverifiable window.
func (d *Detector) DetectConflicts(ctx context.Context, ref model.WorkerRef, start, end time.Time, excludeShiftID string) (*ConflictReport, error) {
	overlapping, err := d.shifts.FindOverlapping(ctx, ref, start, end, excludeShiftID)
	if err != nil {
		return nil, db.NewDependencyError("shift store", err)
	}

	// The store may prefilter, but the canonical overlap test applied here
	// is authoritative.
	conflicts := make([]model.Conflict, 0, len(overlapping))
	for _, shift := range overlapping {
		if intervalsOverlap(start, end, shift.StartTime, shift.EndTime) {
			conflicts = append(conflicts, shiftConflict(shift))
		}
	}

	if ref.Email != "" {
		assignments, err := d.assignments.FindActiveByEmail(ctx, ref.Email)
		if err != nil {
			return nil, db.NewDependencyError("legacy assignment store", err)
		}
		conflicts = append(conflicts, assignmentConflicts(assignments, start, end)...)
	}

	d.logger.Debug("Conflict detection complete",
		zap.String("worker_id", ref.ID),
		zap.String("worker_email", ref.Email),
		zap.String("exclude_shift_id", excludeShiftID),
		zap.Int("conflicts", len(conflicts)))

	return &ConflictReport{
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
		Message:     fmt.Sprintf("found %d scheduling conflict(s)", len(conflicts)),
	}, nil
}
