package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-admin-dashboard/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListEvents returns every event, upcoming first.
func (d *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Order("start_time DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}
