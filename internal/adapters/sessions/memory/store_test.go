package memory

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	c := auth.Claims{UserID: "u1", Email: "ana@example.com"}
	require.NoError(t, s.Put(ctx, "jti-1", c, time.Hour))

	got, err := s.Get(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	now = now.Add(time.Hour)
	_, err = s.Get(ctx, "jti-1")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	require.NoError(t, s.Put(ctx, "jti-2", c, time.Hour))
	require.NoError(t, s.Delete(ctx, "jti-2"))
	_, err = s.Get(ctx, "jti-2")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
