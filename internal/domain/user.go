package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity for a user account.
// Email is stored lowercased; username keeps its original case but is
// unique case-insensitively.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
