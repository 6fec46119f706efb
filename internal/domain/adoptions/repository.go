package adoptions

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("application not found")
	// ErrStatusChanged: el update condicional no encontró la solicitud en el estado esperado.
	ErrStatusChanged = errors.New("application status changed")
)

type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	// UpdateStatus cambia el estado solo si el actual es `from`.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
	// ListAll y ListByUser devuelven más recientes primero.
	ListAll(ctx context.Context) ([]Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
}

// CascadeLog persiste las cascadas de aprobación incompletas.
type CascadeLog interface {
	Append(ctx context.Context, t CascadeTask) error
	ListUnresolved(ctx context.Context) ([]CascadeTask, error)
	MarkResolved(ctx context.Context, id string, at time.Time) error
	RecordFailure(ctx context.Context, id, lastErr string, at time.Time) error
}
