package waitlist

import (
	"bytes"
	"encoding/json"
	"time"

	"ms-admin-dashboard/internal/models"
)

// RawEntryRow is a joined waitlist row as it comes back from the query
// layer. The embedded event relation is JSON whose shape depends on how
// the join was encoded: json_agg yields a (possibly empty) array,
// row_to_json a single object, and a missed join NULL. NormalizeRow hides
// that ambiguity from the grouping engine.
type RawEntryRow struct {
	ID        string          `bun:"id"`
	EventID   string          `bun:"event_id"`
	Email     string          `bun:"email"`
	Referral  string          `bun:"referral"`
	Position  int             `bun:"position"`
	CreatedAt time.Time       `bun:"created_at"`
	Event     json.RawMessage `bun:"event"`
}

// NormalizeRow produces the canonical event and entry for one raw row.
// Rows whose event relation is absent, empty, or missing its id are
// dropped: ok is false and the row is excluded from all downstream
// aggregation. This is a best-effort skip, not a failure.
func NormalizeRow(row RawEntryRow) (models.Event, models.WaitlistEntry, bool) {
	event, ok := decodeEventRelation(row.Event)
	if !ok || event.ID == "" {
		return models.Event{}, models.WaitlistEntry{}, false
	}

	entry := models.WaitlistEntry{
		ID:        row.ID,
		EventID:   event.ID,
		Email:     row.Email,
		Referral:  row.Referral,
		Position:  row.Position,
		CreatedAt: row.CreatedAt,
	}
	return event, entry, true
}

func decodeEventRelation(raw json.RawMessage) (models.Event, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.Event{}, false
	}

	switch trimmed[0] {
	case '[':
		var events []models.Event
		if err := json.Unmarshal(trimmed, &events); err != nil || len(events) == 0 {
			return models.Event{}, false
		}
		return events[0], true
	case '{':
		var event models.Event
		if err := json.Unmarshal(trimmed, &event); err != nil {
			return models.Event{}, false
		}
		return event, true
	default:
		return models.Event{}, false
	}
}
