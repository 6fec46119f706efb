package profiles_test

import (
	"context"
	"testing"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/profiles"
	"pet-adoption/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminEmail string

func (a adminEmail) IsAdminEmail(email string) bool { return email == string(a) }

func newService() *profiles.Service {
	return profiles.NewService(memory.NewProfileRepo(), adminEmail("admin@shelter.org"))
}

func TestCreateAndGet(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "uid-1", profiles.CreateInput{Email: "ana@example.com", FullName: " Ana "})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", p.ID)
	assert.Equal(t, "Ana", p.FullName)
	assert.False(t, p.IsAdmin)

	got, ok, err := svc.Get(ctx, "uid-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.Email, got.Email)

	_, ok, err = svc.Get(ctx, "uid-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateDerivesAdminFlag(t *testing.T) {
	svc := newService()

	p, err := svc.Create(context.Background(), "uid-admin", profiles.CreateInput{Email: "admin@shelter.org", FullName: "Admin"})
	require.NoError(t, err)
	assert.True(t, p.IsAdmin)
}

func TestCreateErrors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "", profiles.CreateInput{Email: "a@b.co", FullName: "A"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = svc.Create(ctx, "uid-1", profiles.CreateInput{Email: "nope", FullName: "A"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Create(ctx, "uid-1", profiles.CreateInput{Email: "a@b.co", FullName: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "uid-1", profiles.CreateInput{Email: "a@b.co", FullName: "A"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestUpdate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "uid-1", profiles.Patch{})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	created, err := svc.Create(ctx, "uid-1", profiles.CreateInput{Email: "a@b.co", FullName: "A"})
	require.NoError(t, err)

	phone := "555-1234"
	p, err := svc.Update(ctx, "uid-1", profiles.Patch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-1234", p.Phone)
	assert.Equal(t, "A", p.FullName)
	assert.False(t, p.UpdatedAt.Before(created.UpdatedAt))

	blank := "  "
	_, err = svc.Update(ctx, "uid-1", profiles.Patch{FullName: &blank})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
