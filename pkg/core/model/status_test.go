package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShiftStatus(t *testing.T) {
	status, err := ParseShiftStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	_, err = ParseShiftStatus("archived")
	assert.Error(t, err)

	_, err = ParseShiftStatus("")
	assert.Error(t, err)
}

func TestShiftStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusApproved.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusApproved.CanTransitionTo(StatusCancelled))

	// Terminal states allow nothing further
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))

	// No skipping pending -> completed
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
}

func TestShiftStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}
