package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption/internal/domain/adoptions"
)

type applicationRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Application
}

func NewApplicationRepo() adoptions.Repository {
	return &applicationRepo{
		byID: make(map[string]adoptions.Application),
	}
}

func (r *applicationRepo) Create(ctx context.Context, a adoptions.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("application already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (adoptions.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.Application{}, adoptions.ErrNotFound
	}
	return a, nil
}

// UpdateStatus es un compare-and-set bajo el lock de escritura.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, from, to adoptions.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.ErrNotFound
	}
	if a.Status != from {
		return adoptions.ErrStatusChanged
	}
	a.Status = to
	a.UpdatedAt = at
	r.byID[id] = a
	return nil
}

func (r *applicationRepo) ListAll(ctx context.Context) ([]adoptions.Application, error) {
	return r.list(func(adoptions.Application) bool { return true }), nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Application, error) {
	return r.list(func(a adoptions.Application) bool { return a.UserID == userID }), nil
}

func (r *applicationRepo) list(keep func(adoptions.Application) bool) []adoptions.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Application, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
