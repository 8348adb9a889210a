package models

import (
	"time"

	"github.com/uptrace/bun"
)

// WaitlistEntry is one person's place on one event's waitlist. Position is
// unique within an event and ascending position means earlier signup;
// display order always follows position, never created_at.
type WaitlistEntry struct {
	bun.BaseModel `bun:"table:waitlist_entries"`

	ID        string    `bun:"id,pk" json:"id"`
	EventID   string    `bun:"event_id,nullzero" json:"eventId"`
	Email     string    `bun:"email" json:"email"`
	Referral  string    `bun:"referral,nullzero" json:"referral,omitempty"`
	Position  int       `bun:"position" json:"position"`
	CreatedAt time.Time `bun:"created_at" json:"createdAt"`
}
