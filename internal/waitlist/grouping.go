package waitlist

import (
	"ms-admin-dashboard/internal/models"
)

// EventGroup is one event's waitlist, built fresh on every request.
// TotalCount always equals len(Waitlist).
type EventGroup struct {
	Event      models.Event           `json:"event"`
	Waitlist   []models.WaitlistEntry `json:"waitlist"`
	TotalCount int                    `json:"totalCount"`
}

// GroupRows folds joined rows into per-event groups in a single pass.
// The first occurrence of an event id fixes that group's position in the
// output; within a group, entries keep the input order (the fetch is
// expected pre-sorted by position ascending, this fold does not re-sort).
// Rows that fail normalization are skipped silently. Duplicate entry ids
// are not deduplicated; this is a fold, not a set operation.
func GroupRows(rows []RawEntryRow) []EventGroup {
	groups := make([]EventGroup, 0)
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		event, entry, ok := NormalizeRow(row)
		if !ok {
			continue
		}

		i, seen := index[event.ID]
		if !seen {
			i = len(groups)
			index[event.ID] = i
			groups = append(groups, EventGroup{
				Event:    event,
				Waitlist: make([]models.WaitlistEntry, 0, 4),
			})
		}

		groups[i].Waitlist = append(groups[i].Waitlist, entry)
		groups[i].TotalCount++
	}

	return groups
}
