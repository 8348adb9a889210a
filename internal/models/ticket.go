package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ticket is a sold ticket for an event. The dashboard only reads
// purchased_at for the hourly sales series; rows are written by the
// checkout flow elsewhere on the platform and by the ingest consumer.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	TicketID    string    `bun:"ticket_id,pk" json:"ticketId"`
	EventID     string    `bun:"event_id" json:"eventId"`
	PurchasedAt time.Time `bun:"purchased_at" json:"purchasedAt"`
	CreatedAt   time.Time `bun:"created_at" json:"createdAt"`
}

// TicketSaleEvent is the message shape on the ticket-sales Kafka topic.
type TicketSaleEvent struct {
	TicketID    string    `json:"ticket_id"`
	EventID     string    `json:"event_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}
