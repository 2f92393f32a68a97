package weights

import (
	"context"
	"time"

	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/google/uuid"
)

// Repository stores weight entries. Upsert is atomic per (user, date)
// via the table's uniqueness constraint.
type Repository interface {
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.WeightEntry, error)
	ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.WeightEntry, error)
	Upsert(ctx context.Context, entry *models.WeightEntry) (*models.WeightEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}
