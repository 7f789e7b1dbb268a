package model

import "time"

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

// WorkerRef identifies a worker by id and/or email. Either field may be
// empty; commitment lookups match on whichever is set.
type WorkerRef struct {
	ID    string
	Email string
}

// IsZero reports whether the reference carries no identity at all.
func (r WorkerRef) IsZero() bool {
	return r.ID == "" && r.Email == ""
}

// Shift represents a scheduled worker/client engagement with a fixed UTC window.
type Shift struct {
	ID             string
	EmployeeID     string
	EmployeeEmail  string
	ClientID       string
	ClientEmail    string
	OrganizationID string
	StartTime      time.Time
	EndTime        time.Time
	Status         ShiftStatus
	IsActive       bool
	Location       *GeoPoint
	BreakMinutes   int
	Notes          string
}

// ShiftSpec carries the fields needed to create a new shift.
type ShiftSpec struct {
	EmployeeID     string
	EmployeeEmail  string
	ClientID       string
	ClientEmail    string
	OrganizationID string
	StartTime      time.Time
	EndTime        time.Time
	Location       *GeoPoint
	BreakMinutes   int
	Notes          string
}

// EmployeeRef builds a worker reference from the spec's employee fields.
func (s ShiftSpec) EmployeeRef() WorkerRef {
	return WorkerRef{ID: s.EmployeeID, Email: s.EmployeeEmail}
}

// HasEmployee reports whether an employee is attached to the spec.
func (s ShiftSpec) HasEmployee() bool {
	return !s.EmployeeRef().IsZero()
}

// ShiftUpdate carries partial updates to a shift. Nil fields are left
// unchanged by the store.
type ShiftUpdate struct {
	EmployeeID    *string
	EmployeeEmail *string
	ClientID      *string
	ClientEmail   *string
	StartTime     *time.Time
	EndTime       *time.Time
	Status        *ShiftStatus
	BreakMinutes  *int
	Notes         *string
}

// ChangesAssignment reports whether the update touches the employee or the
// shift window, which is what forces a fresh conflict check.
func (u ShiftUpdate) ChangesAssignment() bool {
	return u.EmployeeID != nil || u.EmployeeEmail != nil || u.StartTime != nil || u.EndTime != nil
}

// ActiveTimer is an in-progress, unterminated work session. While present it
// blocks any new shift whose window is not entirely before its start.
type ActiveTimer struct {
	UserEmail      string
	ClientEmail    string
	StartTime      time.Time
	OrganizationID string
}

// ScheduleEntry is one recurring commitment on a specific calendar date,
// expressed as local HH:MM strings. The date may arrive as DD-MM-YYYY or
// YYYY-MM-DD and must be normalized before comparison.
type ScheduleEntry struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ClientAssignment is a legacy recurring-schedule record keyed by calendar
// date and local time-of-day rather than UTC instants.
type ClientAssignment struct {
	UserEmail   string
	ClientEmail string
	IsActive    bool
	Schedule    []ScheduleEntry
}

// Worker is an active member of an organization's workforce directory.
type Worker struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Skills    []string
	Location  *GeoPoint
}

// Client is the slice of the client directory the matcher needs.
type Client struct {
	Email    string
	Location *GeoPoint
}

// Candidate is a scored worker produced during a recommendation request.
// It exists only for the duration of that request and is never persisted.
type Candidate struct {
	EmployeeID        string
	Email             string
	FirstName         string
	LastName          string
	Skills            []string
	SkillScore        int
	AvailabilityScore int
	DistanceScore     int
	DistanceKm        *float64
	MatchScore        int
	AIScore           *int
	Reasoning         string
}

// ConflictSource identifies which commitment source produced a conflict.
type ConflictSource string

const (
	// ConflictSourceShift indicates an overlapping scheduled shift.
	ConflictSourceShift ConflictSource = "shift"
	// ConflictSourceTimer indicates a running, unterminated timer.
	ConflictSourceTimer ConflictSource = "active_timer"
	// ConflictSourceAssignment indicates an overlapping legacy schedule slot.
	ConflictSourceAssignment ConflictSource = "client_assignment"
	// ConflictSourceLookupFailure is the synthetic conflict recorded when a
	// commitment source could not be read and the check failed closed.
	ConflictSourceLookupFailure ConflictSource = "lookup_failure"
)

// Conflict describes one overlapping commitment found for a proposed window.
type Conflict struct {
	Source  ConflictSource
	ShiftID string
	Detail  string
}

// RosterPattern is a weekly recurrence slot within a roster template.
type RosterPattern struct {
	DayOfWeek    time.Weekday
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	BreakMinutes int
}

// RosterTemplate is a reusable weekly pattern used to generate concrete
// recurring shifts over a date range. Read-only input to deployment.
type RosterTemplate struct {
	OrganizationID       string
	Pattern              RosterPattern
	DefaultEmployeeID    string
	DefaultEmployeeEmail string
	DefaultClientID      string
	DefaultClientEmail   string
	SupportItems         []string
}
