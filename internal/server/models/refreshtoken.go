package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a server-stored opaque refresh credential. Scopes
// granted at issuance are persisted so a refresh grant without an
// explicit scope request can inherit them.
//
// There is intentionally no foreign key cascade from accounts: a token
// for a deleted account stays in place and fails lazily on next use.
type RefreshToken struct {
	Token     string
	UserID    uuid.UUID
	Scopes    []string
	Expires   time.Time
	CreatedAt time.Time
}
