package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"ms-admin-dashboard/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// EventExists checks whether an event with the given id exists.
func (d *DB) EventExists(ctx context.Context, eventID string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Event)(nil)).
		Where("id = ?", eventID).
		Exists(ctx)
}

// GetEventSaleTimes returns every sale timestamp for an event, ascending.
func (d *DB) GetEventSaleTimes(ctx context.Context, eventID string) ([]time.Time, error) {
	var times []time.Time
	err := d.Bun.NewSelect().
		Model((*models.Ticket)(nil)).
		Column("purchased_at").
		Where("event_id = ?", eventID).
		Order("purchased_at ASC").
		Scan(ctx, &times)
	if err != nil {
		return nil, err
	}
	return times, nil
}

// InsertTicket stores a sold ticket row.
func (d *DB) InsertTicket(ctx context.Context, ticket models.Ticket) error {
	_, err := d.Bun.NewInsert().Model(&ticket).Exec(ctx)
	return err
}
