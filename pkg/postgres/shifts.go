package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

const shiftColumns = `id, employee_id, employee_email, client_id, client_email,
	organization_id, start_time, end_time, status, is_active, longitude,
	latitude, break_minutes, notes`

// FindOverlapping returns the worker's active, non-cancelled shifts whose
// window overlaps [start, end). The SQL predicate mirrors the engine's
// canonical half-open overlap test, so shifts that merely touch at a boundary
// are not returned.
func (d *DB) FindOverlapping(ctx context.Context, ref model.WorkerRef, start, end time.Time, excludeID string) ([]model.Shift, error) {
	identity, args := workerIdentityClause(ref, 1)
	if identity == "" {
		return nil, nil
	}

	args = append(args, start, end)
	query := fmt.Sprintf(`
		SELECT %s FROM shift
		WHERE (%s)
		  AND is_active
		  AND status <> 'cancelled'
		  AND start_time < $%d
		  AND end_time > $%d
	`, shiftColumns, identity, len(args), len(args)-1)

	if excludeID != "" {
		args = append(args, excludeID)
		query += fmt.Sprintf(" AND id <> $%d", len(args))
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// GetByID returns the shift with the given id, or nil when it does not exist.
func (d *DB) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	row := d.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM shift WHERE id = $1`, shiftColumns), id)

	shift, err := scanShift(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return shift, nil
}

// Create inserts a new pending, active shift and returns the stored record.
func (d *DB) Create(ctx context.Context, spec model.ShiftSpec) (*model.Shift, error) {
	id := uuid.NewString()

	var longitude, latitude *float64
	if spec.Location != nil {
		longitude = &spec.Location.Longitude
		latitude = &spec.Location.Latitude
	}

	row := d.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO shift (id, employee_id, employee_email, client_id,
			client_email, organization_id, start_time, end_time, status,
			is_active, longitude, latitude, break_minutes, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', TRUE, $9, $10, $11, $12)
		RETURNING %s
	`, shiftColumns),
		id, spec.EmployeeID, spec.EmployeeEmail, spec.ClientID, spec.ClientEmail,
		spec.OrganizationID, spec.StartTime, spec.EndTime, longitude, latitude,
		spec.BreakMinutes, spec.Notes)

	shift, err := scanShift(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert shift: %w", err)
	}
	return shift, nil
}

// Update applies the set fields of the partial update and returns the updated
// record, or nil when the shift does not exist.
func (d *DB) Update(ctx context.Context, id string, update model.ShiftUpdate) (*model.Shift, error) {
	assignments := []string{"updated_at = NOW()"}
	args := []any{id}

	set := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.EmployeeID != nil {
		set("employee_id", *update.EmployeeID)
	}
	if update.EmployeeEmail != nil {
		set("employee_email", *update.EmployeeEmail)
	}
	if update.ClientID != nil {
		set("client_id", *update.ClientID)
	}
	if update.ClientEmail != nil {
		set("client_email", *update.ClientEmail)
	}
	if update.StartTime != nil {
		set("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		set("end_time", *update.EndTime)
	}
	if update.Status != nil {
		set("status", string(*update.Status))
	}
	if update.BreakMinutes != nil {
		set("break_minutes", *update.BreakMinutes)
	}
	if update.Notes != nil {
		set("notes", *update.Notes)
	}

	row := d.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE shift SET %s WHERE id = $1
		RETURNING %s
	`, strings.Join(assignments, ", "), shiftColumns), args...)

	shift, err := scanShift(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}
	return shift, nil
}

// Cancel soft-deletes the shift. The row is kept, marked cancelled and
// inactive, so it stops counting against future availability checks.
func (d *DB) Cancel(ctx context.Context, id string) (*model.Shift, error) {
	row := d.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE shift
		SET status = 'cancelled', is_active = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, shiftColumns), id)

	shift, err := scanShift(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel shift: %w", err)
	}
	return shift, nil
}

// ListByOrganization returns the organization's shifts, optionally narrowed by
// the filter, newest first.
func (d *DB) ListByOrganization(ctx context.Context, orgID string, filter db.ShiftFilter) ([]model.Shift, error) {
	conditions := []string{"organization_id = $1"}
	args := []any{orgID}

	where := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Status != nil {
		where("status = $%d", string(*filter.Status))
	}
	if filter.EmployeeID != "" {
		where("employee_id = $%d", filter.EmployeeID)
	}
	if filter.ClientID != "" {
		where("client_id = $%d", filter.ClientID)
	}
	if filter.From != nil {
		where("end_time > $%d", *filter.From)
	}
	if filter.To != nil {
		where("start_time < $%d", *filter.To)
	}

	rows, err := d.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM shift
		WHERE %s
		ORDER BY start_time DESC
	`, shiftColumns, strings.Join(conditions, " AND ")), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query organization shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// workerIdentityClause builds the OR predicate matching whichever identity
// fields the reference carries. Empty fields never match anything.
func workerIdentityClause(ref model.WorkerRef, firstArg int) (string, []any) {
	var clauses []string
	var args []any

	if ref.ID != "" {
		args = append(args, ref.ID)
		clauses = append(clauses, fmt.Sprintf("employee_id = $%d", firstArg+len(args)-1))
	}
	if ref.Email != "" {
		args = append(args, ref.Email)
		clauses = append(clauses, fmt.Sprintf("employee_email = $%d", firstArg+len(args)-1))
	}

	return strings.Join(clauses, " OR "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (*model.Shift, error) {
	var shift model.Shift
	var status string
	var longitude, latitude *float64

	err := row.Scan(&shift.ID, &shift.EmployeeID, &shift.EmployeeEmail,
		&shift.ClientID, &shift.ClientEmail, &shift.OrganizationID,
		&shift.StartTime, &shift.EndTime, &status, &shift.IsActive,
		&longitude, &latitude, &shift.BreakMinutes, &shift.Notes)
	if err != nil {
		return nil, err
	}

	shift.Status = model.ShiftStatus(status)
	if longitude != nil && latitude != nil {
		shift.Location = &model.GeoPoint{Longitude: *longitude, Latitude: *latitude}
	}
	return &shift, nil
}

func collectShifts(rows pgx.Rows) ([]model.Shift, error) {
	var shifts []model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return shifts, nil
}
