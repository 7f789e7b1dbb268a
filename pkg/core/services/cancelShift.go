package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
	"github.com/carebridge/scheduler/pkg/events"
)

// CancelShiftStore defines the database operations needed to cancel a shift.
type CancelShiftStore interface {
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	Cancel(ctx context.Context, id string) (*model.Shift, error)
}

// ShiftCancelledPayload is the payload of the shift.cancelled event.
type ShiftCancelledPayload struct {
	ShiftID string
	Shift   model.Shift
}

// CancelShift soft-deletes a shift: status becomes cancelled and the shift is
// deactivated, but the record is never physically removed. On success a
// shift.cancelled event is published for downstream listeners; this is the
// only place in the scheduling core that publishes an event.
func CancelShift(ctx context.Context, store CancelShiftStore, dispatcher events.Dispatcher, logger *zap.Logger, shiftID string) (*model.Shift, error) {
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

	if !current.Status.CanTransitionTo(model.StatusCancelled) {
		return nil, db.NewValidationError("status",
			"cannot cancel a "+string(current.Status)+" shift")
	}

	cancelled, err := store.Cancel(ctx, shiftID)
	if err != nil {
		return nil, db.NewDependencyError("shift store", err)
	}
	if cancelled == nil {
		return nil, db.ErrShiftNotFound
	}

	logger.Info("Shift cancelled", zap.String("shift_id", shiftID))

	dispatcher.Publish(ctx, events.Event{
		Type:    events.EventShiftCancelled,
		Payload: ShiftCancelledPayload{ShiftID: cancelled.ID, Shift: *cancelled},
	})

	return cancelled, nil
}
