package services

import (
	"context"
	"fmt"
	"time"

	"github.com/carebridge/scheduler/pkg/core/matching"
	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/events"
)

type mockShiftStore struct {
	shifts    map[string]*model.Shift
	created   []model.ShiftSpec
	createErr error
	updateErr error
	cancelErr error
	cancelled []string
}

func newMockShiftStore(shifts ...*model.Shift) *mockShiftStore {
	store := &mockShiftStore{shifts: map[string]*model.Shift{}}
	for _, shift := range shifts {
		store.shifts[shift.ID] = shift
	}
	return store
}

func (m *mockShiftStore) Create(_ context.Context, spec model.ShiftSpec) (*model.Shift, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, spec)
	return &model.Shift{
		ID:             fmt.Sprintf("shift-%d", len(m.created)),
		EmployeeID:     spec.EmployeeID,
		EmployeeEmail:  spec.EmployeeEmail,
		ClientID:       spec.ClientID,
		ClientEmail:    spec.ClientEmail,
		OrganizationID: spec.OrganizationID,
		StartTime:      spec.StartTime,
		EndTime:        spec.EndTime,
		Status:         model.StatusPending,
		IsActive:       true,
		BreakMinutes:   spec.BreakMinutes,
		Notes:          spec.Notes,
	}, nil
}

func (m *mockShiftStore) GetByID(_ context.Context, id string) (*model.Shift, error) {
	shift, ok := m.shifts[id]
	if !ok {
		return nil, nil
	}
	copied := *shift
	return &copied, nil
}

func (m *mockShiftStore) Update(ctx context.Context, id string, update model.ShiftUpdate) (*model.Shift, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	current, _ := m.GetByID(ctx, id)
	if current == nil {
		return nil, nil
	}
	merged := mergeUpdate(*current, update)
	if update.Status != nil {
		merged.Status = *update.Status
	}
	m.shifts[id] = &merged
	return &merged, nil
}

func (m *mockShiftStore) Cancel(ctx context.Context, id string) (*model.Shift, error) {
	if m.cancelErr != nil {
		return nil, m.cancelErr
	}
	current, _ := m.GetByID(ctx, id)
	if current == nil {
		return nil, nil
	}
	current.Status = model.StatusCancelled
	current.IsActive = false
	m.shifts[id] = current
	m.cancelled = append(m.cancelled, id)
	return current, nil
}

type mockDetector struct {
	conflicts []model.Conflict
	err       error
	// conflictWhen, if set, decides per call whether conflicts are reported.
	conflictWhen func(ref model.WorkerRef, start, end time.Time) bool

	calls       int
	lastRef     model.WorkerRef
	lastStart   time.Time
	lastEnd     time.Time
	lastExclude string
}

func (m *mockDetector) DetectConflicts(_ context.Context, ref model.WorkerRef, start, end time.Time, excludeShiftID string) (*matching.ConflictReport, error) {
	m.calls++
	m.lastRef = ref
	m.lastStart = start
	m.lastEnd = end
	m.lastExclude = excludeShiftID

	if m.err != nil {
		return nil, m.err
	}
	conflicts := m.conflicts
	if m.conflictWhen != nil && !m.conflictWhen(ref, start, end) {
		conflicts = nil
	}
	if len(conflicts) == 0 {
		return &matching.ConflictReport{HasConflict: false, Message: "no conflicts found"}, nil
	}
	return &matching.ConflictReport{
		HasConflict: true,
		Conflicts:   conflicts,
		Message:     fmt.Sprintf("found %d conflict(s)", len(conflicts)),
	}, nil
}

type mockDispatcher struct {
	published []events.Event
}

func (m *mockDispatcher) Publish(_ context.Context, event events.Event) {
	m.published = append(m.published, event)
}

func (m *mockDispatcher) Subscribe(events.EventType, events.Handler) {}

type mockMatchFinder struct {
	result  *matching.MatchResult
	err     error
	calls   int
	lastReq matching.ShiftRequirements
}

func (m *mockMatchFinder) FindBestMatch(_ context.Context, req matching.ShiftRequirements) (*matching.MatchResult, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}
