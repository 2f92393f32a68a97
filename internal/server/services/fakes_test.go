package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dbelyaeva/fitlog/internal/dbx"
	"github.com/dbelyaeva/fitlog/internal/server/models"
	accountsrepo "github.com/dbelyaeva/fitlog/internal/server/repositories/accounts"
	caloriesrepo "github.com/dbelyaeva/fitlog/internal/server/repositories/calories"
	refreshtokensrepo "github.com/dbelyaeva/fitlog/internal/server/repositories/refreshtokens"
	weightsrepo "github.com/dbelyaeva/fitlog/internal/server/repositories/weights"
	"github.com/google/uuid"
)

// --- shared helpers and repository fakes for the service tests ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeAccountsRepo struct {
	created *models.Account

	createErr error

	existsOut bool
	existsErr error

	getByLoginOut *models.Account
	getByLoginErr error

	getByIDOut *models.Account
	getByIDErr error

	deleteErr error
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = a
	return nil
}

func (f *fakeAccountsRepo) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	return f.existsOut, f.existsErr
}

func (f *fakeAccountsRepo) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	if f.getByLoginErr != nil {
		return nil, f.getByLoginErr
	}
	return f.getByLoginOut, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeAccountsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

type fakeRefreshTokensRepo struct {
	createdToken  string
	createdScopes []string

	createErr error

	findOut *models.RefreshToken
	findErr error

	deletedToken string
	deleteErr    error
}

func (f *fakeRefreshTokensRepo) Create(ctx context.Context, userID uuid.UUID, token string, scopes []string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdToken = token
	f.createdScopes = scopes
	return nil
}

func (f *fakeRefreshTokensRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshTokensRepo) Delete(ctx context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedToken = token
	return nil
}

type fakeWeightsRepo struct {
	getOut *models.WeightEntry
	getErr error

	listOut []*models.WeightEntry
	listErr error

	upserted  *models.WeightEntry
	upsertErr error

	deleteErr error
}

func (f *fakeWeightsRepo) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.WeightEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeWeightsRepo) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.WeightEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeWeightsRepo) Upsert(ctx context.Context, entry *models.WeightEntry) (*models.WeightEntry, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserted = entry
	return entry, nil
}

func (f *fakeWeightsRepo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	return f.deleteErr
}

type fakeCaloriesRepo struct {
	listOut []*models.CalorieEntry
	listErr error

	created   *models.CalorieEntry
	createErr error

	deleteErr error
}

func (f *fakeCaloriesRepo) ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.CalorieEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeCaloriesRepo) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.CalorieEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeCaloriesRepo) Create(ctx context.Context, entry *models.CalorieEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = entry
	return nil
}

func (f *fakeCaloriesRepo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	return f.deleteErr
}

type fakeRepoManager struct {
	accounts *fakeAccountsRepo
	refresh  *fakeRefreshTokensRepo
	weights  *fakeWeightsRepo
	calories *fakeCaloriesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository {
	return m.accounts
}

func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.refresh
}

func (m *fakeRepoManager) Weights(db dbx.DBTX) weightsrepo.Repository {
	return m.weights
}

func (m *fakeRepoManager) Calories(db dbx.DBTX) caloriesrepo.Repository {
	return m.calories
}
