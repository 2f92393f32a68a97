package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user. Login is stored normalized (trimmed,
// lowercased) and unique. PasswordHash never leaves the service layer.
type Account struct {
	ID           uuid.UUID
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
