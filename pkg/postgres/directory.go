package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carebridge/scheduler/pkg/core/model"
)

// ListActiveWorkers returns the organization's active workforce.
func (d *DB) ListActiveWorkers(ctx context.Context, orgID string) ([]model.Worker, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, email, first_name, last_name, skills, longitude, latitude
		FROM worker
		WHERE organization_id = $1 AND is_active
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []model.Worker
	for rows.Next() {
		var worker model.Worker
		var longitude, latitude *float64
		if err := rows.Scan(&worker.ID, &worker.Email, &worker.FirstName,
			&worker.LastName, &worker.Skills, &longitude, &latitude); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		if longitude != nil && latitude != nil {
			worker.Location = &model.GeoPoint{Longitude: *longitude, Latitude: *latitude}
		}
		workers = append(workers, worker)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}
	return workers, nil
}

// GetClientByEmail returns the client record, or nil when the email is not in
// the directory. An unknown client is not an error; proximity scoring simply
// proceeds without a location.
func (d *DB) GetClientByEmail(ctx context.Context, email string) (*model.Client, error) {
	var client model.Client
	var longitude, latitude *float64
	err := d.pool.QueryRow(ctx, `
		SELECT email, longitude, latitude
		FROM client
		WHERE email = $1
	`, email).Scan(&client.Email, &longitude, &latitude)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query client: %w", err)
	}
	if longitude != nil && latitude != nil {
		client.Location = &model.GeoPoint{Longitude: *longitude, Latitude: *latitude}
	}
	return &client, nil
}
