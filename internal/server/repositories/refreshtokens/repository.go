package refreshtokens

import (
	"context"
	"time"

	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/google/uuid"
)

// Repository stores opaque refresh tokens together with the scopes
// granted when they were issued.
type Repository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, scopes []string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}
