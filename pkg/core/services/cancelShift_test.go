package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
	"github.com/carebridge/scheduler/pkg/events"
)

func TestCancelShift_SoftDeletesAndPublishes(t *testing.T) {
	store := newMockShiftStore(existingShift())
	dispatcher := &mockDispatcher{}

	cancelled, err := CancelShift(context.Background(), store, dispatcher, zap.NewNop(), "shift-1")

	require.NoError(t, err)
	require.NotNil(t, cancelled)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)
	assert.False(t, cancelled.IsActive)

	stored := store.shifts["shift-1"]
	assert.Equal(t, model.StatusCancelled, stored.Status, "record stays in the store, only deactivated")

	require.Len(t, dispatcher.published, 1)
	event := dispatcher.published[0]
	assert.Equal(t, events.EventShiftCancelled, event.Type)
	payload, ok := event.Payload.(ShiftCancelledPayload)
	require.True(t, ok)
	assert.Equal(t, "shift-1", payload.ShiftID)
	assert.Equal(t, model.StatusCancelled, payload.Shift.Status)
}

func TestCancelShift_NotFound(t *testing.T) {
	dispatcher := &mockDispatcher{}

	_, err := CancelShift(context.Background(), newMockShiftStore(), dispatcher, zap.NewNop(), "missing")

	assert.ErrorIs(t, err, db.ErrShiftNotFound)
	assert.Empty(t, dispatcher.published)
}

func TestCancelShift_CompletedShiftRejected(t *testing.T) {
	shift := existingShift()
	shift.Status = model.StatusCompleted
	store := newMockShiftStore(shift)
	dispatcher := &mockDispatcher{}

	_, err := CancelShift(context.Background(), store, dispatcher, zap.NewNop(), "shift-1")

	var validationErr *db.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, store.cancelled)
	assert.Empty(t, dispatcher.published, "no event for a rejected cancellation")
}

func TestCancelShift_AlreadyCancelledRejected(t *testing.T) {
	shift := existingShift()
	shift.Status = model.StatusCancelled
	store := newMockShiftStore(shift)

	_, err := CancelShift(context.Background(), store, &mockDispatcher{}, zap.NewNop(), "shift-1")

	var validationErr *db.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCancelShift_MissingIDRejected(t *testing.T) {
	_, err := CancelShift(context.Background(), newMockShiftStore(), &mockDispatcher{}, zap.NewNop(), "")

	var validationErr *db.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "shiftId", validationErr.Field)
}
