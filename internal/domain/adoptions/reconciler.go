package adoptions

import (
	"context"
	"fmt"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"go.uber.org/multierr"
)

// Reconciler reintenta las cascadas de aprobación pendientes. Solo corre cuando se lo
// invoca (endpoint admin o cmd/reconcile).
type Reconciler struct {
	cascades CascadeLog
	pets     PetStore
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewReconciler(cascades CascadeLog, petStore PetStore, log logger.Logger, m *metrics.Metrics) *Reconciler {
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{
		cascades: cascades,
		pets:     petStore,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

type Report struct {
	Processed int
	Resolved  int
	Failed    int
}

// Run procesa todas las tareas sin resolver. Una falla no corta la corrida; los errores
// se combinan y se devuelven junto al reporte.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	const op = "adoptions.reconcile"

	tasks, err := r.cascades.ListUnresolved(ctx)
	if err != nil {
		return Report{}, apperr.Store(op, err)
	}

	var (
		rep  Report
		errs error
	)
	adopted := pets.StatusAdopted

	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		rep.Processed++

		fields := map[string]any{
			"task_id":        t.ID,
			"application_id": t.ApplicationID,
			"pet_id":         t.PetID,
			"attempt":        t.Attempts + 1,
		}

		if _, err := r.pets.Update(ctx, t.PetID, pets.Patch{Status: &adopted}); err != nil {
			rep.Failed++
			r.metrics.IncReconciled(false)
			errs = multierr.Append(errs, fmt.Errorf("task %s: %w", t.ID, err))
			if rerr := r.cascades.RecordFailure(ctx, t.ID, err.Error(), r.now()); rerr != nil {
				errs = multierr.Append(errs, fmt.Errorf("task %s: record failure: %w", t.ID, rerr))
			}
			fields["error"] = err
			r.log.Warn("cascade task still failing", fields)
			continue
		}

		if err := r.cascades.MarkResolved(ctx, t.ID, r.now()); err != nil {
			// La mascota ya quedó adoptada; reintentar la tarea es inocuo.
			rep.Failed++
			r.metrics.IncReconciled(false)
			errs = multierr.Append(errs, fmt.Errorf("task %s: mark resolved: %w", t.ID, err))
			fields["error"] = err
			r.log.Warn("cascade task applied but not marked resolved", fields)
			continue
		}

		rep.Resolved++
		r.metrics.IncReconciled(true)
		r.log.Info("cascade task resolved", fields)
	}

	return rep, errs
}
