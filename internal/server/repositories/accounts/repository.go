package accounts

import (
	"context"

	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/google/uuid"
)

// Repository is the durable account store. Create relies on a database
// uniqueness constraint for login, so a concurrent duplicate insert
// surfaces as common.ErrorConflict rather than a generic failure.
type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	ExistsByLogin(ctx context.Context, login string) (bool, error)
	GetByLogin(ctx context.Context, login string) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
