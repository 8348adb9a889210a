package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-admin-dashboard/internal/models"
	"ms-admin-dashboard/internal/waitlist"
)

type DB struct {
	Bun *bun.DB
}

// GetJoinedRows fetches every waitlist entry with its event relation
// encoded as JSON. json_agg produces an array (empty when the join
// misses), which is exactly the shape NormalizeRow expects to untangle.
// Rows come back sorted event-first, then by position ascending, so the
// grouping fold sees each event's entries contiguously and in rank order.
func (d *DB) GetJoinedRows(ctx context.Context) ([]waitlist.RawEntryRow, error) {
	var rows []waitlist.RawEntryRow
	err := d.Bun.NewRaw(`
		SELECT
			w.id,
			w.event_id,
			w.email,
			w.referral,
			w.position,
			w.created_at,
			(
				SELECT json_agg(e.*)
				FROM events e
				WHERE e.id = w.event_id
			) AS event
		FROM waitlist_entries w
		ORDER BY w.event_id, w.position ASC
	`).Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetEntriesForEvent returns one event's entries ordered by position.
func (d *DB) GetEntriesForEvent(ctx context.Context, eventID string) ([]models.WaitlistEntry, error) {
	var entries []models.WaitlistEntry
	err := d.Bun.NewSelect().
		Model(&entries).
		Where("event_id = ?", eventID).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEventByID fetches one event; sql.ErrNoRows when the id is unknown.
func (d *DB) GetEventByID(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", eventID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
