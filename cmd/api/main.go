package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-adoption/internal/adapters/auth/local"
	"pet-adoption/internal/adapters/auth/remote"
	"pet-adoption/internal/adapters/imagehost/cloudinary"
	memsessions "pet-adoption/internal/adapters/sessions/memory"
	redissessions "pet-adoption/internal/adapters/sessions/redis"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/images"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/router"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// @title Pet Adoption API
// @version 1.0
// @description Listado de mascotas, solicitudes de adopción y revisión por el administrador.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i].Close())
		}
	}()

	var db *sql.DB
	if cfg.DB.Enabled() {
		db, err = pg.Open(ctx, cfg.DB.DSN, pg.Options{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxIdleTime: cfg.DB.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		closers = append(closers, db)

		if cfg.DB.AutoMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info("migrations applied", nil)
		}
		log.Info("using postgres store", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory store", nil)
	}

	provider, verifier, err := buildAuth(ctx, cfg, db, log, &closers)
	if err != nil {
		return err
	}

	var host images.ImageHost
	if cfg.Images.Enabled() {
		c, err := cloudinary.NewClient(cloudinary.Config{
			CloudName:    cfg.Images.CloudName,
			UploadPreset: cfg.Images.UploadPreset,
			BaseURL:      cfg.Images.BaseURL,
			Timeout:      cfg.Images.Timeout,
		})
		if err != nil {
			return err
		}
		host = c
	} else {
		log.Warn("cloudinary not configured, image uploads disabled", nil)
	}

	if cfg.Auth.AdminEmail == "" {
		log.Warn("ADMIN_EMAIL not set, nobody has admin access", nil)
	}

	h := router.NewRouter(router.Options{
		Provider:     provider,
		AuthVerifier: verifier,
		DB:           db,
		AdminEmail:   cfg.Auth.AdminEmail,
		ImageHost:    host,
		Images: images.Options{
			MaxBytes:    cfg.Images.MaxUploadBytes(),
			Concurrency: cfg.Images.Concurrency,
		},
		// Un request puede traer varias imágenes.
		MaxUploadBytes: 4 * cfg.Images.MaxUploadBytes(),
		Logger:         log,
		Metrics:        metrics.NewWithRegisterer(prometheus.DefaultRegisterer),
	})

	srv := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "auth_mode": cfg.Auth.Mode})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildAuth devuelve (provider, verifier). En modo dev ambos son nil.
func buildAuth(ctx context.Context, cfg *config.Config, db *sql.DB, log logger.Logger, closers *[]io.Closer) (auth.Provider, auth.AuthVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeLocal:
		var sessions auth.SessionStore
		if cfg.Redis.URL != "" {
			rdb, err := redissessions.Connect(ctx, cfg.Redis.URL)
			if err != nil {
				return nil, nil, err
			}
			*closers = append(*closers, rdb)
			sessions = redissessions.NewStore(rdb, cfg.Redis.SessionPrefix)
			log.Info("using redis sessions", nil)
		} else {
			sessions = memsessions.NewStore()
			log.Warn("REDIS_URL not set, sessions are in-memory", nil)
		}

		var accounts auth.AccountRepository
		if db != nil {
			accounts = pg.NewAccountsRepo(db)
		} else {
			accounts = mem.NewAccountRepo()
		}

		p := local.NewProvider(accounts, sessions, local.TokenConfig{
			Secret: cfg.Auth.JWTSecret,
			Issuer: cfg.Auth.JWTIssuer,
			TTL:    cfg.Auth.TokenTTL,
		}, local.ArgonParams{
			Memory:      cfg.Argon.MemoryKB,
			Time:        cfg.Argon.Time,
			Parallelism: cfg.Argon.Parallelism,
			SaltLen:     cfg.Argon.SaltLen,
			KeyLen:      cfg.Argon.KeyLen,
		})
		return p, p, nil

	case config.AuthModeRemote:
		c, err := remote.NewClient(remote.Config{
			BaseURL: cfg.Auth.RemoteBaseURL,
			APIKey:  cfg.Auth.RemoteAPIKey,
			Timeout: cfg.Auth.RemoteTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	}

	log.Warn("AUTH_MODE=dev: identity comes from X-Debug-User-* headers", nil)
	return nil, nil, nil
}
