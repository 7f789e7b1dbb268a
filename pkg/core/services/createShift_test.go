package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

func validSpec() model.ShiftSpec {
	return model.ShiftSpec{
		EmployeeID:     "worker-1",
		EmployeeEmail:  "worker@example.com",
		ClientEmail:    "client@example.com",
		OrganizationID: "org-1",
		StartTime:      time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, 1, 20, 17, 0, 0, 0, time.UTC),
	}
}

func TestCreateShift_Success(t *testing.T) {
	store := newMockShiftStore()
	detector := &mockDetector{}

	shift, err := CreateShift(context.Background(), store, detector, zap.NewNop(), validSpec())

	require.NoError(t, err)
	require.NotNil(t, shift)
	assert.Equal(t, model.StatusPending, shift.Status)
	assert.True(t, shift.IsActive)
	assert.Equal(t, 1, detector.calls)
	assert.Equal(t, "worker-1", detector.lastRef.ID)
	assert.Equal(t, "", detector.lastExclude)
	assert.Len(t, store.created, 1)
}

func TestCreateShift_EndNotAfterStartRejectedBeforeGuard(t *testing.T) {
	store := newMockShiftStore()
	detector := &mockDetector{}
	spec := validSpec()
	spec.EndTime = spec.StartTime

	shift, err := CreateShift(context.Background(), store, detector, zap.NewNop(), spec)

	require.Error(t, err)
	assert.Nil(t, shift)
	var validationErr *db.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "endTime", validationErr.Field)
	assert.Equal(t, 0, detector.calls)
	assert.Empty(t, store.created)
}

func TestCreateShift_MissingOrganizationRejected(t *testing.T) {
	spec := validSpec()
	spec.OrganizationID = ""

	_, err := CreateShift(context.Background(), newMockShiftStore(), &mockDetector{}, zap.NewNop(), spec)

	var validationErr *db.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "organizationId", validationErr.Field)
}

func TestCreateShift_ConflictRejected(t *testing.T) {
	store := newMockShiftStore()
	detector := &mockDetector{
		conflicts: []model.Conflict{
			{Source: model.ConflictSourceShift, ShiftID: "existing-1", Detail: "overlapping shift"},
		},
	}

	shift, err := CreateShift(context.Background(), store, detector, zap.NewNop(), validSpec())

	require.Error(t, err)
	assert.Nil(t, shift)
	var conflictErr *db.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, "existing-1", conflictErr.Conflicts[0].ShiftID)
	assert.Empty(t, store.created, "nothing should be persisted on conflict")
}

func TestCreateShift_NoEmployeeSkipsGuard(t *testing.T) {
	store := newMockShiftStore()
	detector := &mockDetector{
		conflicts: []model.Conflict{{Source: model.ConflictSourceShift, ShiftID: "existing-1"}},
	}
	spec := validSpec()
	spec.EmployeeID = ""
	spec.EmployeeEmail = ""

	shift, err := CreateShift(context.Background(), store, detector, zap.NewNop(), spec)

	require.NoError(t, err)
	require.NotNil(t, shift)
	assert.Equal(t, 0, detector.calls)
	assert.Len(t, store.created, 1)
}

func TestCreateShift_DetectorFailurePropagates(t *testing.T) {
	store := newMockShiftStore()
	detector := &mockDetector{err: db.NewDependencyError("shift store", errors.New("connection refused"))}

	_, err := CreateShift(context.Background(), store, detector, zap.NewNop(), validSpec())

	var depErr *db.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Empty(t, store.created)
}

func TestCreateShift_StoreFailureWrapped(t *testing.T) {
	store := newMockShiftStore()
	store.createErr = errors.New("write timeout")

	_, err := CreateShift(context.Background(), store, &mockDetector{}, zap.NewNop(), validSpec())

	var depErr *db.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "shift store", depErr.Source)
}
