package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carebridge/scheduler/pkg/core/model"
)

// FindRunning returns the worker's in-progress timer, or nil when they are
// not clocked in. A timer row exists only while a session is running; it is
// removed once the session is terminated.
func (d *DB) FindRunning(ctx context.Context, email string) (*model.ActiveTimer, error) {
	var timer model.ActiveTimer
	err := d.pool.QueryRow(ctx, `
		SELECT user_email, client_email, organization_id, start_time
		FROM active_timer
		WHERE user_email = $1
	`, email).Scan(&timer.UserEmail, &timer.ClientEmail, &timer.OrganizationID, &timer.StartTime)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active timer: %w", err)
	}
	return &timer, nil
}
