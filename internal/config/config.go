package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AuthModeDev    = "dev"
	AuthModeLocal  = "local"
	AuthModeRemote = "remote"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Argon  ArgonConfig
	Images ImagesConfig
}

// Load lee un .env opcional y luego el entorno. Las variables ya exportadas tienen prioridad.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// .env ausente no es error.
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Auth.AdminEmail = strings.TrimSpace(cfg.Auth.AdminEmail)
	cfg.Auth.Mode = strings.ToLower(strings.TrimSpace(cfg.Auth.Mode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Name      string `envconfig:"APP_NAME" default:"pet-adoption"`
	Env       string `envconfig:"APP_ENV" default:"dev"`
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) Addr() string {
	return ":" + strings.TrimPrefix(a.Port, ":")
}

type DBConfig struct {
	DSN         string `envconfig:"DB_DSN"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Enabled indica si hay Postgres configurado; sin DSN se usan repos in-memory.
func (d DBConfig) Enabled() bool {
	return strings.TrimSpace(d.DSN) != ""
}

type RedisConfig struct {
	URL           string `envconfig:"REDIS_URL"`
	SessionPrefix string `envconfig:"REDIS_SESSION_PREFIX" default:"pet-adoption:session:"`
}

type AuthConfig struct {
	Mode       string `envconfig:"AUTH_MODE" default:"dev"`
	AdminEmail string `envconfig:"ADMIN_EMAIL"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTIssuer string        `envconfig:"JWT_ISSUER" default:"pet-adoption"`
	TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`

	RemoteBaseURL string        `envconfig:"AUTH_REMOTE_BASE_URL"`
	RemoteAPIKey  string        `envconfig:"AUTH_REMOTE_API_KEY"`
	RemoteTimeout time.Duration `envconfig:"AUTH_REMOTE_TIMEOUT" default:"5s"`
}

type ArgonConfig struct {
	MemoryKB    uint32 `envconfig:"ARGON_MEMORY_KB" default:"65536"`
	Time        uint32 `envconfig:"ARGON_TIME" default:"3"`
	Parallelism uint8  `envconfig:"ARGON_PARALLELISM" default:"2"`
	SaltLen     uint32 `envconfig:"ARGON_SALT_LEN" default:"16"`
	KeyLen      uint32 `envconfig:"ARGON_KEY_LEN" default:"32"`
}

type ImagesConfig struct {
	CloudName    string        `envconfig:"CLOUDINARY_CLOUD_NAME"`
	UploadPreset string        `envconfig:"CLOUDINARY_UPLOAD_PRESET"`
	BaseURL      string        `envconfig:"CLOUDINARY_BASE_URL" default:"https://api.cloudinary.com"`
	MaxUploadMB  int           `envconfig:"IMAGES_MAX_UPLOAD_MB" default:"10"`
	Concurrency  int           `envconfig:"IMAGES_UPLOAD_CONCURRENCY" default:"4"`
	Timeout      time.Duration `envconfig:"IMAGES_UPLOAD_TIMEOUT" default:"30s"`
}

// Enabled indica si el image host está configurado.
func (i ImagesConfig) Enabled() bool {
	return i.CloudName != "" && i.UploadPreset != ""
}

func (i ImagesConfig) MaxUploadBytes() int64 {
	return int64(i.MaxUploadMB) << 20
}

var devEnvs = map[string]bool{"dev": true, "test": true}

func (c Config) Validate() error {
	var errs []error

	switch c.Auth.Mode {
	case AuthModeDev:
		// Modo dev confía en los headers X-Debug-User-*; cualquiera podría presentarse como admin.
		if !devEnvs[strings.ToLower(strings.TrimSpace(c.App.Env))] {
			errs = append(errs, fmt.Errorf("AUTH_MODE=dev is only allowed with APP_ENV=dev or test (got %q)", c.App.Env))
		}
	case AuthModeLocal:
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			errs = append(errs, errors.New("JWT_SECRET is required when AUTH_MODE=local"))
		}
		if c.Auth.TokenTTL <= 0 {
			errs = append(errs, errors.New("JWT_TTL must be positive"))
		}
		// Las cuentas locales guardan el email en minúsculas y el gate compara exacto.
		if c.Auth.AdminEmail != strings.ToLower(c.Auth.AdminEmail) {
			errs = append(errs, errors.New("ADMIN_EMAIL must be lowercase when AUTH_MODE=local"))
		}
	case AuthModeRemote:
		if strings.TrimSpace(c.Auth.RemoteBaseURL) == "" {
			errs = append(errs, errors.New("AUTH_REMOTE_BASE_URL is required when AUTH_MODE=remote"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE must be one of dev, local, remote (got %q)", c.Auth.Mode))
	}

	if c.Images.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("IMAGES_MAX_UPLOAD_MB must be positive"))
	}
	if c.Images.Concurrency <= 0 {
		errs = append(errs, errors.New("IMAGES_UPLOAD_CONCURRENCY must be positive"))
	}
	if (c.Images.CloudName == "") != (c.Images.UploadPreset == "") {
		errs = append(errs, errors.New("CLOUDINARY_CLOUD_NAME and CLOUDINARY_UPLOAD_PRESET must be set together"))
	}

	return errors.Join(errs...)
}
