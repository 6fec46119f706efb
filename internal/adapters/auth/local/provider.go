package local

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/ports/auth"

	"github.com/google/uuid"
)

// Provider es un identity provider propio: cuentas con argon2id, tokens JWT y
// sesiones revocables en el SessionStore.
type Provider struct {
	accounts auth.AccountRepository
	sessions auth.SessionStore
	tokens   TokenConfig
	argon    ArgonParams
	now      func() time.Time
}

func NewProvider(accounts auth.AccountRepository, sessions auth.SessionStore, tokens TokenConfig, argon ArgonParams) *Provider {
	if tokens.TTL <= 0 {
		tokens.TTL = 24 * time.Hour
	}
	return &Provider{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		argon:    argon,
		now:      time.Now,
	}
}

var _ auth.Provider = (*Provider)(nil)

func (p *Provider) SignUp(ctx context.Context, c auth.Credentials) (auth.Session, error) {
	email := normalizeEmail(c.Email)
	if email == "" || c.Password == "" {
		return auth.Session{}, auth.ErrInvalidCredentials
	}

	hash, err := HashPassword(c.Password, p.argon)
	if err != nil {
		return auth.Session{}, err
	}
	acc := auth.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    p.now(),
	}
	if err := p.accounts.Create(ctx, acc); err != nil {
		return auth.Session{}, err
	}
	return p.openSession(ctx, acc)
}

func (p *Provider) Login(ctx context.Context, c auth.Credentials) (auth.Session, error) {
	acc, err := p.accounts.GetByEmail(ctx, normalizeEmail(c.Email))
	if errors.Is(err, auth.ErrAccountNotFound) {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.Session{}, err
	}

	ok, err := VerifyPassword(c.Password, acc.PasswordHash)
	if err != nil {
		return auth.Session{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	return p.openSession(ctx, acc)
}

// Logout borra la sesión del token. Un token inválido no es error.
func (p *Provider) Logout(ctx context.Context, token string) error {
	claims, err := parse(p.tokens, p.now, token)
	if err != nil {
		return nil
	}
	return p.sessions.Delete(ctx, claims.ID)
}

// Verify exige firma válida y que la sesión siga viva en el store.
func (p *Provider) Verify(ctx context.Context, token string) (auth.Claims, error) {
	claims, err := parse(p.tokens, p.now, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	sess, err := p.sessions.Get(ctx, claims.ID)
	if errors.Is(err, auth.ErrSessionNotFound) {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	if err != nil {
		return auth.Claims{}, err
	}
	if sess.UserID != claims.Subject {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{UserID: claims.Subject, Email: claims.Email}, nil
}

func (p *Provider) openSession(ctx context.Context, acc auth.Account) (auth.Session, error) {
	now := p.now()
	token, jti, exp, err := mint(p.tokens, now, acc.ID, acc.Email)
	if err != nil {
		return auth.Session{}, err
	}

	claims := auth.Claims{UserID: acc.ID, Email: acc.Email}
	if err := p.sessions.Put(ctx, jti, claims, exp.Sub(now)); err != nil {
		return auth.Session{}, fmt.Errorf("store session: %w", err)
	}
	return auth.Session{Token: token, Claims: claims, ExpiresAt: exp}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
