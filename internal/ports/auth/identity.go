package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Account es una cuenta del identity provider local.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type AccountRepository interface {
	// Create devuelve ErrEmailTaken si el email ya existe.
	Create(ctx context.Context, a Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
}

// SessionStore guarda las sesiones vivas por id de token (jti).
type SessionStore interface {
	Put(ctx context.Context, sessionID string, c Claims, ttl time.Duration) error
	// Get devuelve ErrSessionNotFound si la sesión expiró o se cerró.
	Get(ctx context.Context, sessionID string) (Claims, error)
	Delete(ctx context.Context, sessionID string) error
}
