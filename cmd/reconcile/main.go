package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"

	"go.uber.org/multierr"
)

// reconcile reintenta una vez las cascadas de aprobación pendientes y termina.
// Sale con código 1 si alguna tarea sigue fallando.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name + "-reconcile",
	})

	if err := run(cfg, log); err != nil {
		for _, e := range multierr.Errors(err) {
			log.Error("reconcile failed", map[string]any{"error": e})
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) (err error) {
	if !cfg.DB.Enabled() {
		return fmt.Errorf("DB_DSN is required: the in-memory store has nothing to reconcile")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pg.Open(ctx, cfg.DB.DSN, pg.Options{MaxOpenConns: 2, MaxIdleConns: 1})
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	petsSvc := pets.NewService(pg.NewPetsRepo(db))
	rec := adoptions.NewReconciler(pg.NewCascadeLog(db), petsSvc, log, nil)

	rep, err := rec.Run(ctx)
	log.Info("reconcile finished", map[string]any{
		"processed": rep.Processed,
		"resolved":  rep.Resolved,
		"failed":    rep.Failed,
	})
	return err
}
