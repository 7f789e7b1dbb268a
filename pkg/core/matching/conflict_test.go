package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

func TestDetectConflicts_NoConflicts(t *testing.T) {
	detector := NewDetector(&mockShiftFinder{}, &mockAssignmentFinder{}, zap.NewNop())

	start, end := window(9, 17)
	report, err := detector.DetectConflicts(context.Background(), testRef, start, end, "")
	require.NoError(t, err)

	assert.False(t, report.HasConflict)
	assert.Empty(t, report.Conflicts)
	assert.Equal(t, "found 0 scheduling conflict(s)", report.Message)
}

func TestDetectConflicts_OverlappingShift(t *testing.T) {
	existingStart, existingEnd := window(9, 17)
	shifts := &mockShiftFinder{shifts: []model.Shift{{
		ID:        "shift-1",
		Status:    model.StatusApproved,
		IsActive:  true,
		StartTime: existingStart,
		EndTime:   existingEnd,
	}}}
	detector := NewDetector(shifts, &mockAssignmentFinder{}, zap.NewNop())

	start, end := window(10, 16)
	report, err := detector.DetectConflicts(context.Background(), testRef, start, end, "")
	require.NoError(t, err)

	assert.True(t, report.HasConflict)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "shift-1", report.Conflicts[0].ShiftID)
	assert.Equal(t, "found 1 scheduling conflict(s)", report.Message)
}

func TestDetectConflicts_ExcludesOwnShift(t *testing.T) {
	existingStart, existingEnd := window(9, 17)
	shifts := &mockShiftFinder{shifts: []model.Shift{{
		ID:        "shift-1",
		Status:    model.StatusApproved,
		IsActive:  true,
		StartTime: existingStart,
		EndTime:   existingEnd,
	}}}
	detector := NewDetector(shifts, &mockAssignmentFinder{}, zap.NewNop())

	// Rescheduling shift-1 within its own window must not conflict with itself
	start, end := window(10, 16)
	report, err := detector.DetectConflicts(context.Background(), testRef, start, end, "shift-1")
	require.NoError(t, err)

	assert.False(t, report.HasConflict)
	assert.Equal(t, "shift-1", shifts.lastExcl)
}

func TestDetectConflicts_LegacyAssignment(t *testing.T) {
	assignments := &mockAssignmentFinder{assignments: []model.ClientAssignment{{
		UserEmail:   testRef.Email,
		ClientEmail: "client@example.com",
		IsActive:    true,
		Schedule: []model.ScheduleEntry{
			{Date: "20-01-2026", StartTime: "10:00", EndTime: "12:00"},
		},
	}}}
	detector := NewDetector(&mockShiftFinder{}, assignments, zap.NewNop())

	start, end := window(9, 17)
	report, err := detector.DetectConflicts(context.Background(), testRef, start, end, "")
	require.NoError(t, err)

	assert.True(t, report.HasConflict)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, model.ConflictSourceAssignment, report.Conflicts[0].Source)
}

func TestDetectConflicts_LookupFailureIsAnError(t *testing.T) {
	shifts := &mockShiftFinder{findErr: errors.New("timeout")}
	detector := NewDetector(shifts, &mockAssignmentFinder{}, zap.NewNop())

	start, end := window(9, 17)
	_, err := detector.DetectConflicts(context.Background(), testRef, start, end, "")
	require.Error(t, err)

	var depErr *db.DependencyError
	assert.ErrorAs(t, err, &depErr)
}
