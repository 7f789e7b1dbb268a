package db

import (
	"context"
	"time"

	"github.com/carebridge/scheduler/pkg/core/model"
)

// ShiftFilter narrows organization shift listings.
type ShiftFilter struct {
	Status     *model.ShiftStatus
	EmployeeID string
	ClientID   string
	From       *time.Time
	To         *time.Time
}

// ShiftStore defines the interface for shift persistence operations.
type ShiftStore interface {
	// FindOverlapping returns all active, non-cancelled shifts for the
	// referenced worker whose interval overlaps [start, end). excludeID, when
	// non-empty, removes the shift being edited from consideration.
	FindOverlapping(ctx context.Context, ref model.WorkerRef, start, end time.Time, excludeID string) ([]model.Shift, error)
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	Create(ctx context.Context, spec model.ShiftSpec) (*model.Shift, error)
	Update(ctx context.Context, id string, update model.ShiftUpdate) (*model.Shift, error)
	// Cancel performs the soft transition to cancelled/inactive. Shifts are
	// never physically removed.
	Cancel(ctx context.Context, id string) (*model.Shift, error)
	ListByOrganization(ctx context.Context, orgID string, filter ShiftFilter) ([]model.Shift, error)
}

// TimerStore defines the interface for active-timer lookups.
type TimerStore interface {
	// FindRunning returns the worker's in-progress timer, or nil if they are
	// not clocked in.
	FindRunning(ctx context.Context, email string) (*model.ActiveTimer, error)
}

// AssignmentStore defines the interface for legacy recurring-schedule lookups.
type AssignmentStore interface {
	FindActiveByEmail(ctx context.Context, email string) ([]model.ClientAssignment, error)
}

// WorkerDirectory lists the active workforce of an organization.
type WorkerDirectory interface {
	ListActiveWorkers(ctx context.Context, orgID string) ([]model.Worker, error)
}

// ClientDirectory resolves client records by email.
type ClientDirectory interface {
	// GetClientByEmail returns nil (not an error) when the client is unknown.
	GetClientByEmail(ctx context.Context, email string) (*model.Client, error)
}
