package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/dbelyaeva/fitlog/internal/cryptox"
	"github.com/dbelyaeva/fitlog/internal/dbx"
	"github.com/dbelyaeva/fitlog/internal/server/auth"
	"github.com/dbelyaeva/fitlog/internal/server/config"
	"github.com/dbelyaeva/fitlog/internal/server/repositories/repomanager"
)

// Scopes the token endpoint will grant. Anything else in a scope
// request is silently dropped.
const (
	ScopeOpenID        = "openid"
	ScopeAPI           = "api"
	ScopeOfflineAccess = "offline_access"
)

var supportedScopes = []string{ScopeOpenID, ScopeAPI, ScopeOfflineAccess}

// OAuthError is a structured token-endpoint failure, carrying the OAuth2
// error code and a human-readable description. The transport decides the
// HTTP status; services never leak raw errors through it.
type OAuthError struct {
	Code        string
	Description string
}

func (e *OAuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func invalidGrant(description string) *OAuthError {
	return &OAuthError{Code: "invalid_grant", Description: description}
}

// PasswordGrant is a resource-owner password credentials request.
// Scopes holds the requested scopes, already split by the transport;
// nil means the transport-level default was empty.
type PasswordGrant struct {
	Username string
	Password string
	Scopes   []string
}

// RefreshGrant exchanges a previously issued refresh token. When Scopes
// is empty the grant inherits the scopes stored with the token; a
// non-empty request lets the client narrow access, never widen it.
type RefreshGrant struct {
	RefreshToken string
	Scopes       []string
}

// TokenResponse is the successful token-endpoint payload. RefreshToken
// and IdentityToken are empty unless the corresponding scopes were
// granted.
type TokenResponse struct {
	AccessToken   string
	TokenType     string
	ExpiresIn     int
	Scope         string
	RefreshToken  string
	IdentityToken string
}

// TokenService implements the two token grants. All failures an
// attacker could provoke come back as *OAuthError with code
// invalid_grant and a deliberately uninformative description.
type TokenService struct {
	db                   *sql.DB
	repomanager          repomanager.RepositoryManager
	signer               *auth.TokenSigner
	accessTokenValidity  time.Duration
	refreshTokenValidity time.Duration
}

func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{
		db:                   db,
		repomanager:          m,
		signer:               auth.NewTokenSigner([]byte(cfg.SecretKey), cfg.Issuer, cfg.Audience),
		accessTokenValidity:  cfg.AccessTokenValidity,
		refreshTokenValidity: cfg.RefreshTokenValidity,
	}
}

// Signer exposes the token signer so the transport can validate bearer
// tokens with the same key material that minted them.
func (s *TokenService) Signer() *auth.TokenSigner {
	return s.signer
}

// Password verifies the resource owner's credentials and mints a token
// response. Unknown login and wrong password produce the same error so
// the endpoint cannot be used to enumerate accounts.
func (s *TokenService) Password(ctx context.Context, grant PasswordGrant) (*TokenResponse, error) {
	login := common.NormalizeLogin(grant.Username)

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, invalidGrant("Invalid login or password.")
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(grant.Password, account.PasswordHash) {
		return nil, invalidGrant("Invalid login or password.")
	}

	principal := auth.Principal{
		SubjectID: account.ID,
		Login:     account.Login,
		Scopes:    intersectScopes(grant.Scopes),
	}

	return s.issue(ctx, s.db, principal)
}

// Refresh exchanges a stored refresh token for a fresh token response,
// rotating the token transactionally so a replayed old token fails.
// A token whose account has been deleted since issuance is rejected
// here rather than at deletion time.
func (s *TokenService) Refresh(ctx context.Context, grant RefreshGrant) (*TokenResponse, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, grant.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, invalidGrant("The refresh token is no longer valid.")
		}
		return nil, common.ErrorInternal
	}
	if token.Expires.Before(time.Now()) {
		return nil, invalidGrant("The refresh token is no longer valid.")
	}

	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, invalidGrant("User no longer exists.")
		}
		return nil, common.ErrorInternal
	}

	scopes := token.Scopes
	if len(grant.Scopes) > 0 {
		scopes = narrowScopes(grant.Scopes, token.Scopes)
	}

	principal := auth.Principal{
		SubjectID: account.ID,
		Login:     account.Login,
		Scopes:    scopes,
	}

	var resp *TokenResponse
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, grant.RefreshToken); err != nil {
			return fmt.Errorf("error rotating refresh token: %w", err)
		}
		var issueErr error
		resp, issueErr = s.issue(ctx, tx, principal)
		return issueErr
	})
	if err != nil {
		var oauthErr *OAuthError
		if errors.As(err, &oauthErr) {
			return nil, oauthErr
		}
		return nil, common.ErrorInternal
	}

	return resp, nil
}

// issue mints the response tokens for a principal whose scopes are
// already settled. The identity token requires openid; a new stored
// refresh token requires offline_access and goes through db, which may
// be a transaction during rotation.
func (s *TokenService) issue(ctx context.Context, db dbx.DBTX, p auth.Principal) (*TokenResponse, error) {
	accessToken, _, err := s.signer.SignAccessToken(p, s.accessTokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	resp := &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.accessTokenValidity.Seconds()),
		Scope:       strings.Join(p.Scopes, " "),
	}

	if p.HasScope(ScopeOpenID) {
		idToken, err := s.signer.SignIdentityToken(p, s.accessTokenValidity)
		if err != nil {
			return nil, common.ErrorInternal
		}
		resp.IdentityToken = idToken
	}

	if p.HasScope(ScopeOfflineAccess) {
		refreshToken, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if err := s.repomanager.RefreshTokens(db).Create(ctx, p.SubjectID, refreshToken, p.Scopes, s.refreshTokenValidity); err != nil {
			return nil, common.ErrorInternal
		}
		resp.RefreshToken = refreshToken
	}

	return resp, nil
}

// intersectScopes keeps the requested scopes the endpoint supports, in
// canonical order. Unsupported values are dropped without error, so a
// request can legitimately end up with no scopes at all.
func intersectScopes(requested []string) []string {
	granted := make([]string, 0, len(supportedScopes))
	for _, s := range supportedScopes {
		for _, r := range requested {
			if r == s {
				granted = append(granted, s)
				break
			}
		}
	}
	return granted
}

// narrowScopes grants the requested scopes that were part of the stored
// set, so a refresh can shed scopes but never pick up ones the original
// grant did not carry.
func narrowScopes(requested, stored []string) []string {
	granted := make([]string, 0, len(stored))
	for _, s := range intersectScopes(requested) {
		for _, kept := range stored {
			if s == kept {
				granted = append(granted, s)
				break
			}
		}
	}
	return granted
}
