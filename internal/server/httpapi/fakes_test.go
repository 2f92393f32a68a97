package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/dbelyaeva/fitlog/internal/dbx"
	"github.com/dbelyaeva/fitlog/internal/logging"
	"github.com/dbelyaeva/fitlog/internal/server/config"
	"github.com/dbelyaeva/fitlog/internal/server/models"
	accountsrepo "github.com/dbelyaeva/fitlog/internal/server/repositories/accounts"
	caloriesrepo "github.com/dbelyaeva/fitlog/internal/server/repositories/calories"
	refreshtokensrepo "github.com/dbelyaeva/fitlog/internal/server/repositories/refreshtokens"
	weightsrepo "github.com/dbelyaeva/fitlog/internal/server/repositories/weights"
	"github.com/dbelyaeva/fitlog/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func commonNotFound() error { return common.ErrorNotFound }
func commonConflict() error { return common.ErrorConflict }

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("response does not decode: %v (%s)", err, w.Body.String())
	}
}

// --- in-memory repositories backing the handler tests ---

type memAccountsRepo struct {
	byLogin map[string]*models.Account
}

func newMemAccountsRepo() *memAccountsRepo {
	return &memAccountsRepo{byLogin: make(map[string]*models.Account)}
}

func (r *memAccountsRepo) Create(ctx context.Context, a *models.Account) error {
	if _, ok := r.byLogin[a.Login]; ok {
		return commonConflict()
	}
	r.byLogin[a.Login] = a
	return nil
}

func (r *memAccountsRepo) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	_, ok := r.byLogin[login]
	return ok, nil
}

func (r *memAccountsRepo) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	a, ok := r.byLogin[login]
	if !ok {
		return nil, commonNotFound()
	}
	return a, nil
}

func (r *memAccountsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	for _, a := range r.byLogin {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, commonNotFound()
}

func (r *memAccountsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for login, a := range r.byLogin {
		if a.ID == id {
			delete(r.byLogin, login)
			return nil
		}
	}
	return commonNotFound()
}

type memRefreshTokensRepo struct {
	byToken map[string]*models.RefreshToken
}

func newMemRefreshTokensRepo() *memRefreshTokensRepo {
	return &memRefreshTokensRepo{byToken: make(map[string]*models.RefreshToken)}
}

func (r *memRefreshTokensRepo) Create(ctx context.Context, userID uuid.UUID, token string, scopes []string, validity time.Duration) error {
	r.byToken[token] = &models.RefreshToken{
		Token:   token,
		UserID:  userID,
		Scopes:  scopes,
		Expires: time.Now().Add(validity),
	}
	return nil
}

func (r *memRefreshTokensRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := r.byToken[token]
	if !ok {
		return nil, commonNotFound()
	}
	return t, nil
}

func (r *memRefreshTokensRepo) Delete(ctx context.Context, token string) error {
	delete(r.byToken, token)
	return nil
}

type memWeightsRepo struct {
	entries []*models.WeightEntry
}

func (r *memWeightsRepo) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.WeightEntry, error) {
	for _, e := range r.entries {
		if e.UserID == userID && e.EntryDate.Equal(date) {
			return e, nil
		}
	}
	return nil, commonNotFound()
}

func (r *memWeightsRepo) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.WeightEntry, error) {
	out := make([]*models.WeightEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID && !e.EntryDate.Before(start) && !e.EntryDate.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memWeightsRepo) Upsert(ctx context.Context, entry *models.WeightEntry) (*models.WeightEntry, error) {
	for _, e := range r.entries {
		if e.UserID == entry.UserID && e.EntryDate.Equal(entry.EntryDate) {
			e.WeightKg = entry.WeightKg
			return e, nil
		}
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *memWeightsRepo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	for i, e := range r.entries {
		if e.UserID == userID && e.ID == entryID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return commonNotFound()
}

type memCaloriesRepo struct {
	entries []*models.CalorieEntry
}

func (r *memCaloriesRepo) ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.CalorieEntry, error) {
	out := make([]*models.CalorieEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID && e.EntryDate.Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memCaloriesRepo) ListRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.CalorieEntry, error) {
	out := make([]*models.CalorieEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID && !e.EntryDate.Before(start) && !e.EntryDate.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memCaloriesRepo) Create(ctx context.Context, entry *models.CalorieEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memCaloriesRepo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	for i, e := range r.entries {
		if e.UserID == userID && e.ID == entryID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return commonNotFound()
}

type memRepoManager struct {
	accounts *memAccountsRepo
	refresh  *memRefreshTokensRepo
	weights  *memWeightsRepo
	calories *memCaloriesRepo
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository {
	return m.accounts
}

func (m *memRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.refresh
}

func (m *memRepoManager) Weights(db dbx.DBTX) weightsrepo.Repository {
	return m.weights
}

func (m *memRepoManager) Calories(db dbx.DBTX) caloriesrepo.Repository {
	return m.calories
}

// --- test server ---

type testServer struct {
	router *gin.Engine
	mock   sqlmock.Sqlmock
	rm     *memRepoManager
	tokens *services.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rm := &memRepoManager{
		accounts: newMemAccountsRepo(),
		refresh:  newMemRefreshTokensRepo(),
		weights:  &memWeightsRepo{},
		calories: &memCaloriesRepo{},
	}

	cfg := &config.Config{
		SecretKey:            "test-secret",
		Issuer:               "fitlog",
		Audience:             "fitlog-api",
		AccessTokenValidity:  15 * time.Minute,
		RefreshTokenValidity: 24 * time.Hour,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	tokens := services.NewTokenService(db, rm, cfg)
	handler := NewHandler(
		services.NewAccountService(db, rm),
		tokens,
		services.NewWeightService(db, rm),
		services.NewCalorieService(db, rm),
		logger,
	)

	return &testServer{
		router: handler.InitRoutes(),
		mock:   mock,
		rm:     rm,
		tokens: tokens,
	}
}

// signUpAndSignIn registers an account and returns its id and a bearer
// access token for it.
func (ts *testServer) signUpAndSignIn(t *testing.T, login, password string) (uuid.UUID, string) {
	t.Helper()

	w := ts.doJSON(t, http.MethodPost, "/api/auth/sign-up", `{"login":"`+login+`","password":"`+password+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("sign-up status %d: %s", w.Code, w.Body.String())
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", login)
	form.Set("password", password)
	w = ts.doForm(t, "/connect/token", form)
	if w.Code != http.StatusOK {
		t.Fatalf("token status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, w, &resp)

	account, err := ts.rm.accounts.GetByLogin(context.Background(), login)
	if err != nil {
		t.Fatalf("account lookup: %v", err)
	}
	return account.ID, resp.AccessToken
}

func (ts *testServer) doJSON(t *testing.T, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) doForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}
