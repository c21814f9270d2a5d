package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents an application user account. Emails are stored lowercase so
// lookups stay case-insensitive.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
