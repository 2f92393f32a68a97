package models

import (
	"time"

	"github.com/google/uuid"
)

// CalorieEntry is a single recorded meal or snack. Several entries may
// exist for the same user and date.
type CalorieEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	EntryDate time.Time
	Calories  int
	FoodName  *string
	PartOfDay *string
	Note      *string
}
