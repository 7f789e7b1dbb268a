package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/matching"
	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

// ConflictDetector guards shift writes against overlapping commitments.
type ConflictDetector interface {
	DetectConflicts(ctx context.Context, ref model.WorkerRef, start, end time.Time, excludeShiftID string) (*matching.ConflictReport, error)
}

// CreateShiftStore defines the database operations needed to create a shift.
type CreateShiftStore interface {
	Create(ctx context.Context, spec model.ShiftSpec) (*model.Shift, error)
}

// CreateShift validates the spec, runs the pre-commit conflict guard when an
// employee is attached, and persists the shift with status pending.
//
// There is no lock or transaction around the check-then-write sequence: two
// concurrent requests booking the same worker for overlapping windows can
// both pass the guard and both persist. This race window is a known, accepted
// property of the design.
func CreateShift(ctx context.Context, store CreateShiftStore, detector ConflictDetector, logger *zap.Logger, spec model.ShiftSpec) (*model.Shift, error) {
	if err := validateShiftSpec(spec); err != nil {
		return nil, err
	}

	logger.Debug("Creating shift",
		zap.String("organization_id", spec.OrganizationID),
		zap.String("employee_id", spec.EmployeeID),
		zap.Time("start", spec.StartTime),
		zap.Time("end", spec.EndTime))

	if spec.HasEmployee() {
		report, err := detector.DetectConflicts(ctx, spec.EmployeeRef(), spec.StartTime, spec.EndTime, "")
		if err != nil {
			return nil, err
		}
		if report.HasConflict {
			logger.Info("Shift creation rejected by conflict guard",
				zap.String("employee_id", spec.EmployeeID),
				zap.Int("conflicts", len(report.Conflicts)))
			return nil, db.NewConflictError(report.Conflicts)
		}
	}

	shift, err := store.Create(ctx, spec)
	if err != nil {
		return nil, db.NewDependencyError("shift store", err)
	}

	logger.Info("Shift created",
		zap.String("shift_id", shift.ID),
		zap.String("organization_id", shift.OrganizationID))

	return shift, nil
}

func validateShiftSpec(spec model.ShiftSpec) error {
	if spec.OrganizationID == "" {
		return db.NewValidationError("organizationId", "is required")
	}
	if spec.StartTime.IsZero() {
		return db.NewValidationError("startTime", "is required")
	}
	if spec.EndTime.IsZero() {
		return db.NewValidationError("endTime", "is required")
	}
	if !spec.EndTime.After(spec.StartTime) {
		return db.NewValidationError("endTime", "must be after startTime")
	}
	return nil
}
