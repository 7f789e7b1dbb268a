package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carebridge/scheduler/pkg/core/model"
)

// FindActiveByEmail returns the worker's active legacy assignments. Each
// schedule is stored as a JSONB array of date and time-of-day entries; date
// formats are normalized later by the availability checker, not here.
func (d *DB) FindActiveByEmail(ctx context.Context, email string) ([]model.ClientAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT user_email, client_email, is_active, schedule
		FROM client_assignment
		WHERE user_email = $1 AND is_active
	`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query client assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.ClientAssignment
	for rows.Next() {
		var assignment model.ClientAssignment
		var schedule []byte
		if err := rows.Scan(&assignment.UserEmail, &assignment.ClientEmail,
			&assignment.IsActive, &schedule); err != nil {
			return nil, fmt.Errorf("failed to scan client assignment: %w", err)
		}
		if err := json.Unmarshal(schedule, &assignment.Schedule); err != nil {
			return nil, fmt.Errorf("failed to decode assignment schedule: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client assignments: %w", err)
	}
	return assignments, nil
}
