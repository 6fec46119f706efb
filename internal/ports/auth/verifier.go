package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnsupported        = errors.New("operation not supported by identity provider")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Provider es el identity provider completo: signup, login, logout y sesión actual (Verify).
type Provider interface {
	AuthVerifier
	SignUp(ctx context.Context, c Credentials) (Session, error)
	Login(ctx context.Context, c Credentials) (Session, error)
	Logout(ctx context.Context, token string) error
}
