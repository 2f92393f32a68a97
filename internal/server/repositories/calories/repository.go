package calories

import (
	"context"
	"time"

	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/google/uuid"
)

// Repository stores calorie entries. Unlike weights, several entries may
// share a (user, date) pair.
type Repository interface {
	ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.CalorieEntry, error)
	ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.CalorieEntry, error)
	Create(ctx context.Context, entry *models.CalorieEntry) error
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}
