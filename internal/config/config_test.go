package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv borra las variables y las restaura al terminar el test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "APP_ENV", "PORT", "DB_DSN", "IMAGES_MAX_UPLOAD_MB", "DB_CONN_MAX_LIFETIME", "CLOUDINARY_CLOUD_NAME", "CLOUDINARY_UPLOAD_PRESET")
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("ADMIN_EMAIL", "  admin@shelter.org ")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Addr())
	assert.Equal(t, "admin@shelter.org", cfg.Auth.AdminEmail)
	assert.Equal(t, 10, cfg.Images.MaxUploadMB)
	assert.Equal(t, int64(10<<20), cfg.Images.MaxUploadBytes())
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.False(t, cfg.DB.Enabled())
	assert.False(t, cfg.Images.Enabled())
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t, "APP_ENV", "PORT", "DB_DSN", "AUTH_MODE")

	f := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(f, []byte("PORT=9090\nDB_DSN=postgres://x@localhost/pets\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("PORT")
		_ = os.Unsetenv("DB_DSN")
	})

	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.App.Addr())
	assert.True(t, cfg.DB.Enabled())
}

func TestValidate(t *testing.T) {
	base := Config{
		App:    AppConfig{Env: "dev"},
		Auth:   AuthConfig{Mode: AuthModeDev, TokenTTL: time.Hour},
		Images: ImagesConfig{MaxUploadMB: 10, Concurrency: 2},
	}
	require.NoError(t, base.Validate())

	local := base
	local.Auth.Mode = AuthModeLocal
	assert.ErrorContains(t, local.Validate(), "JWT_SECRET")
	local.Auth.JWTSecret = "s3cret"
	assert.NoError(t, local.Validate())

	local.Auth.AdminEmail = "Admin@Shelter.org"
	assert.ErrorContains(t, local.Validate(), "ADMIN_EMAIL must be lowercase")
	local.Auth.AdminEmail = "admin@shelter.org"
	assert.NoError(t, local.Validate())

	// Fuera de local el email no se normaliza, así que no se exige minúsculas.
	mixedDev := base
	mixedDev.Auth.AdminEmail = "Admin@Shelter.org"
	assert.NoError(t, mixedDev.Validate())

	test := base
	test.App.Env = "test"
	assert.NoError(t, test.Validate())

	prod := base
	prod.App.Env = "production"
	assert.ErrorContains(t, prod.Validate(), "AUTH_MODE=dev")
	prod.Auth.Mode = AuthModeLocal
	prod.Auth.JWTSecret = "s3cret"
	assert.NoError(t, prod.Validate())

	remote := base
	remote.Auth.Mode = AuthModeRemote
	assert.ErrorContains(t, remote.Validate(), "AUTH_REMOTE_BASE_URL")

	bad := base
	bad.Auth.Mode = "oauth"
	assert.ErrorContains(t, bad.Validate(), "AUTH_MODE")

	half := base
	half.Images.CloudName = "demo"
	assert.ErrorContains(t, half.Validate(), "CLOUDINARY")
}

func TestLoadRejectsDevAuthOutsideDev(t *testing.T) {
	clearEnv(t, "AUTH_MODE", "PORT", "DB_DSN", "CLOUDINARY_CLOUD_NAME", "CLOUDINARY_UPLOAD_PRESET")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_EMAIL", "admin@shelter.org")

	_, err := Load(noEnvFile(t))
	require.Error(t, err)
	assert.ErrorContains(t, err, "AUTH_MODE=dev")
}
