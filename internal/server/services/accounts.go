// Package services contains server-side business logic: account
// lifecycle, token issuance, and the weight/calorie diary operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/dbelyaeva/fitlog/internal/cryptox"
	"github.com/dbelyaeva/fitlog/internal/dbx"
	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	minLoginLength    = 3
	minPasswordLength = 8
)

// AccountService handles registration and removal of accounts.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m}
}

// SignUp registers a new account. The login is normalized (trimmed,
// lowercased) before any check, so "  Nora " and "nora" are the same
// account. Duplicate logins yield common.ErrorConflict whether detected
// by the pre-check or by the unique index on concurrent inserts.
func (s *AccountService) SignUp(ctx context.Context, login, password string) (*models.Account, error) {
	login = common.NormalizeLogin(login)

	if utf8.RuneCountInString(login) < minLoginLength {
		return nil, fmt.Errorf("login must be at least %d characters: %w", minLoginLength, common.ErrorValidation)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrorValidation)
	}

	repo := s.repomanager.Accounts(s.db)

	exists, err := repo.ExistsByLogin(ctx, login)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, fmt.Errorf("login %q is taken: %w", login, common.ErrorConflict)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	account := &models.Account{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
	}

	if err := repo.Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, fmt.Errorf("login %q is taken: %w", login, common.ErrorConflict)
		}
		return nil, common.ErrorInternal
	}

	return account, nil
}

// DeleteAccount removes the account and, via foreign keys, its diary
// entries. Refresh tokens are left behind on purpose and rejected
// lazily when next presented. Missing accounts yield common.ErrorNotFound.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		if _, err := repo.GetByID(ctx, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return common.ErrorInternal
		}

		return repo.Delete(ctx, userID)
	})
}
