// Package auth mints and parses the signed bearer tokens issued by the
// token exchange endpoint.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the authenticated identity carried by a token: who the
// subject is and which scopes were granted. It is the only claims shape
// the rest of the server deals with; the JWT mapping stays inside this
// package.
type Principal struct {
	SubjectID uuid.UUID
	Login     string
	Scopes    []string
}

// HasScope reports whether the principal was granted the given scope.
func (p Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Claims is the JWT claim set for access and identity tokens.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Scope string `json:"scope,omitempty"`
}

// TokenSigner signs and validates HS256 tokens. The secret key is
// injected at construction and read-only afterwards.
type TokenSigner struct {
	secret   []byte
	issuer   string
	audience string
}

func NewTokenSigner(secret []byte, issuer, audience string) *TokenSigner {
	return &TokenSigner{secret: secret, issuer: issuer, audience: audience}
}

// SignAccessToken mints the bearer access token for a principal. The
// subject and name claims are always present here regardless of scopes.
// Returns the compact token and its jti.
func (s *TokenSigner) SignAccessToken(p Principal, validity time.Duration) (string, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   p.SubjectID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Name:  p.Login,
		Scope: strings.Join(p.Scopes, " "),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// SignIdentityToken mints the OIDC identity token. Callers only invoke
// this when the openid scope was granted; the identity token carries the
// subject and name claims but no scopes.
func (s *TokenSigner) SignIdentityToken(p Principal, validity time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.SubjectID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Name: p.Login,
	})

	return token.SignedString(s.secret)
}

// Parse validates a compact token (signature, expiry, issuer, audience)
// and extracts its principal. Expired tokens yield common.ErrTokenExpired;
// everything else invalid yields common.ErrInvalidToken.
func (s *TokenSigner) Parse(tokenString string) (*Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return &Principal{
		SubjectID: subject,
		Login:     claims.Name,
		Scopes:    strings.Fields(claims.Scope),
	}, nil
}
