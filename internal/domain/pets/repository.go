package pets

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los repos cuando el id no existe.
var ErrNotFound = errors.New("pet not found")

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Update(ctx context.Context, p Pet) error
	// List devuelve todas las mascotas, más recientes primero.
	List(ctx context.Context) ([]Pet, error)
}
