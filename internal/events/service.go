package events

import (
	"context"
	"fmt"

	"ms-admin-dashboard/internal/models"
)

type EventDBLayer interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

type Service struct {
	DB EventDBLayer
}

func NewService(db EventDBLayer) *Service {
	return &Service{DB: db}
}

// ListResponse wraps the dashboard's event table data.
type ListResponse struct {
	Events []models.Event `json:"events"`
}

func (s *Service) ListEvents(ctx context.Context) (*ListResponse, error) {
	events, err := s.DB.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = make([]models.Event, 0)
	}
	return &ListResponse{Events: events}, nil
}
