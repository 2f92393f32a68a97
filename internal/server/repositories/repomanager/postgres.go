// Package repomanager provides a concrete RepositoryManager for
// PostgreSQL, wiring together repository constructors and schema
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dbelyaeva/fitlog/internal/dbx"
	"github.com/dbelyaeva/fitlog/internal/server/migrations"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/accounts"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/calories"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/refreshtokens"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/weights"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories and
// exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Weights(db dbx.DBTX) weights.Repository {
	return weights.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Calories(db dbx.DBTX) calories.Repository {
	return calories.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations points goose at the embedded migration files and applies
// any that are pending.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
