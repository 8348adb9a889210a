package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,nullzero" json:"name"`
	Venue     string    `bun:"venue,nullzero" json:"venue"`
	Capacity  int       `bun:"capacity" json:"capacity"`
	Reserved  int       `bun:"reserved,nullzero" json:"tickets"`
	StartTime time.Time `bun:"start_time,nullzero" json:"startTimeDate"`
	CreatedAt time.Time `bun:"created_at" json:"createdAt"`
}
