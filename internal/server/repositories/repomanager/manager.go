package repomanager

import (
	"context"
	"database/sql"

	"github.com/dbelyaeva/fitlog/internal/dbx"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/accounts"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/calories"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/refreshtokens"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/weights"
)

// RepositoryManager vends repository implementations bound to a DBTX,
// so a service can run the same repository against *sql.DB or inside a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Weights(db dbx.DBTX) weights.Repository
	Calories(db dbx.DBTX) calories.Repository
}
