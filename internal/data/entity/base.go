package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Coordinates and Location are stored as JSONB snapshots.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Location struct {
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}
