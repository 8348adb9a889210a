package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ms-admin-dashboard/internal/models"
)

// ErrEventNotFound is returned when a well-formed event id matches no row.
var ErrEventNotFound = errors.New("event not found")

type WaitlistDBLayer interface {
	GetJoinedRows(ctx context.Context) ([]RawEntryRow, error)
	GetEntriesForEvent(ctx context.Context, eventID string) ([]models.WaitlistEntry, error)
	GetEventByID(ctx context.Context, eventID string) (*models.Event, error)
}

type Service struct {
	DB WaitlistDBLayer
}

func NewService(db WaitlistDBLayer) *Service {
	return &Service{DB: db}
}

// GroupedResponse is the envelope for the leaderboard view.
type GroupedResponse struct {
	Leaderboard []EventGroup `json:"leaderboard"`
	Grouped     bool         `json:"grouped"`
}

// EventResponse is the envelope for a single event's waitlist.
type EventResponse struct {
	Event      models.Event           `json:"event"`
	Waitlist   []models.WaitlistEntry `json:"waitlist"`
	TotalCount int                    `json:"totalCount"`
	Grouped    bool                   `json:"grouped"`
}

// GetGroupedWaitlist folds every waitlist row into per-event groups.
// An empty table yields an empty leaderboard, never null.
func (s *Service) GetGroupedWaitlist(ctx context.Context) (*GroupedResponse, error) {
	rows, err := s.DB.GetJoinedRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch waitlist rows: %w", err)
	}

	return &GroupedResponse{
		Leaderboard: GroupRows(rows),
		Grouped:     true,
	}, nil
}

// GetEventWaitlist returns one event's waitlist ordered by position.
func (s *Service) GetEventWaitlist(ctx context.Context, eventID string) (*EventResponse, error) {
	event, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	entries, err := s.DB.GetEntriesForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch waitlist for event %s: %w", eventID, err)
	}
	if entries == nil {
		entries = make([]models.WaitlistEntry, 0)
	}

	return &EventResponse{
		Event:      *event,
		Waitlist:   entries,
		TotalCount: len(entries),
		Grouped:    false,
	}, nil
}
