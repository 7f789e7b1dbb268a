package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

// UpdateShiftStore defines the database operations needed to update a shift.
type UpdateShiftStore interface {
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	Update(ctx context.Context, id string, update model.ShiftUpdate) (*model.Shift, error)
}

// UpdateShift applies a partial update to a shift. If the update touches the
// employee or the window, the conflict guard is re-run over the merged values
// with the shift's own id excluded, so a shift never conflicts with its prior
// self. Status changes must follow the lifecycle state machine.
func UpdateShift(ctx context.Context, store UpdateShiftStore, detector ConflictDetector, logger *zap.Logger, shiftID string, update model.ShiftUpdate) (*model.Shift, error) {
	if shiftID == "" {
		return nil, db.NewValidationError("shiftId", "is required")
	}

	current, err := store.GetByID(ctx, shiftID)
	if err != nil {
		return nil, db.NewDependencyError("shift store", err)
	}
	if current == nil {
		return nil, db.ErrShiftNotFound
	}

	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, db.NewValidationError("status", "is not a recognized shift status")
		}
		if !current.Status.CanTransitionTo(*update.Status) {
			return nil, db.NewValidationError("status",
				"cannot transition from "+string(current.Status)+" to "+string(*update.Status))
		}
	}

	merged := mergeUpdate(*current, update)
	if !merged.EndTime.After(merged.StartTime) {
		return nil, db.NewValidationError("endTime", "must be after startTime")
	}

	if update.ChangesAssignment() && !mergedRef(merged).IsZero() {
		report, err := detector.DetectConflicts(ctx, mergedRef(merged), merged.StartTime, merged.EndTime, shiftID)
		if err != nil {
			return nil, err
		}
		if report.HasConflict {
			logger.Info("Shift update rejected by conflict guard",
				zap.String("shift_id", shiftID),
				zap.Int("conflicts", len(report.Conflicts)))
			return nil, db.NewConflictError(report.Conflicts)
		}
	}

	updated, err := store.Update(ctx, shiftID, update)
	if err != nil {
		return nil, db.NewDependencyError("shift store", err)
	}
	if updated == nil {
		return nil, db.ErrShiftNotFound
	}

	logger.Info("Shift updated", zap.String("shift_id", shiftID))
	return updated, nil
}

// mergeUpdate overlays the update's set fields onto the current shift to get
// the values the conflict guard should see.
func mergeUpdate(current model.Shift, update model.ShiftUpdate) model.Shift {
	if update.EmployeeID != nil {
		current.EmployeeID = *update.EmployeeID
	}
	if update.EmployeeEmail != nil {
		current.EmployeeEmail = *update.EmployeeEmail
	}
	if update.ClientID != nil {
		current.ClientID = *update.ClientID
	}
	if update.ClientEmail != nil {
		current.ClientEmail = *update.ClientEmail
	}
	if update.StartTime != nil {
		current.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		current.EndTime = *update.EndTime
	}
	return current
}

func mergedRef(shift model.Shift) model.WorkerRef {
	return model.WorkerRef{ID: shift.EmployeeID, Email: shift.EmployeeEmail}
}
