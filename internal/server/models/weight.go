package models

import (
	"time"

	"github.com/google/uuid"
)

// WeightEntry is a user's recorded weight for a calendar date. At most
// one entry exists per (user, date).
type WeightEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	EntryDate time.Time
	WeightKg  float64
}
