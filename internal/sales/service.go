package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ms-admin-dashboard/internal/models"
)

// ErrEventNotFound is returned when a well-formed event id matches no row.
var ErrEventNotFound = errors.New("event not found")

type SalesDBLayer interface {
	EventExists(ctx context.Context, eventID string) (bool, error)
	GetEventSaleTimes(ctx context.Context, eventID string) ([]time.Time, error)
	InsertTicket(ctx context.Context, ticket models.Ticket) error
}

type Service struct {
	DB SalesDBLayer
}

func NewService(db SalesDBLayer) *Service {
	return &Service{DB: db}
}

// SeriesResponse is the envelope for the hourly sales time series.
type SeriesResponse struct {
	Data         []Bucket `json:"data"`
	TotalTickets int      `json:"totalTickets"`
}

// GetEventSales returns the hourly sales series for one event. An event
// with no sales yields an empty series with TotalTickets 0.
func (s *Service) GetEventSales(ctx context.Context, eventID string) (*SeriesResponse, error) {
	exists, err := s.DB.EventExists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check event %s: %w", eventID, err)
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	times, err := s.DB.GetEventSaleTimes(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale times for event %s: %w", eventID, err)
	}

	buckets, total := BucketHourly(times)
	return &SeriesResponse{
		Data:         buckets,
		TotalTickets: total,
	}, nil
}

// RecordSale persists a ticket sale consumed from the sales topic.
func (s *Service) RecordSale(ctx context.Context, sale models.TicketSaleEvent) error {
	if sale.TicketID == "" || sale.EventID == "" {
		return errors.New("sale event missing ticket or event id")
	}

	purchasedAt := sale.PurchasedAt
	if purchasedAt.IsZero() {
		purchasedAt = time.Now().UTC()
	}

	ticket := models.Ticket{
		TicketID:    sale.TicketID,
		EventID:     sale.EventID,
		PurchasedAt: purchasedAt,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.DB.InsertTicket(ctx, ticket); err != nil {
		return fmt.Errorf("failed to insert ticket %s: %w", sale.TicketID, err)
	}
	return nil
}
