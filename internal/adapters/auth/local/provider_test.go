package local

import (
	"context"
	"testing"
	"time"

	sessions "pet-adoption/internal/adapters/sessions/memory"
	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Parámetros mínimos para que los tests sean rápidos.
var testArgon = ArgonParams{Memory: 1024, Time: 1, Parallelism: 1, SaltLen: 8, KeyLen: 16}

func newTestProvider() *Provider {
	return NewProvider(memory.NewAccountRepo(), sessions.NewStore(), TokenConfig{
		Secret: "test-secret",
		Issuer: "pet-adoption-test",
		TTL:    time.Hour,
	}, testArgon)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	enc, err := HashPassword("s3cret!", testArgon)
	require.NoError(t, err)
	assert.Contains(t, enc, "$argon2id$v=19$m=1024,t=1,p=1$")

	ok, err := VerifyPassword("s3cret!", enc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", enc)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("x", "$bcrypt$nope")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestSignUpLoginVerifyLogout(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	sess, err := p.SignUp(ctx, auth.Credentials{Email: " Ana@Example.com ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", sess.Claims.Email)
	assert.NotEmpty(t, sess.Token)

	_, err = p.SignUp(ctx, auth.Credentials{Email: "ana@example.com", Password: "other"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	_, err = p.Login(ctx, auth.Credentials{Email: "ana@example.com", Password: "bad"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = p.Login(ctx, auth.Credentials{Email: "nobody@example.com", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	login, err := p.Login(ctx, auth.Credentials{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)

	claims, err := p.Verify(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Claims.UserID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)

	require.NoError(t, p.Logout(ctx, login.Token))
	_, err = p.Verify(ctx, login.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// La sesión del signup sigue viva.
	_, err = p.Verify(ctx, sess.Token)
	assert.NoError(t, err)
}

func TestVerifyRejectsForeignAndExpiredTokens(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	sess, err := p.SignUp(ctx, auth.Credentials{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)

	other := newTestProvider()
	other.tokens.Secret = "another-secret"
	_, err = other.Verify(ctx, sess.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = p.Verify(ctx, sess.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = p.Verify(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
