package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-adoption/internal/domain/adoptions"
)

var errTaskNotFound = errors.New("cascade task not found")

type cascadeLog struct {
	mu   sync.Mutex
	byID map[string]adoptions.CascadeTask
}

func NewCascadeLog() adoptions.CascadeLog {
	return &cascadeLog{
		byID: make(map[string]adoptions.CascadeTask),
	}
}

func (l *cascadeLog) Append(ctx context.Context, t adoptions.CascadeTask) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.ID == "" {
		return errors.New("cascade task id required")
	}
	l.byID[t.ID] = t
	return nil
}

// ListUnresolved devuelve las tareas pendientes en orden de creación.
func (l *cascadeLog) ListUnresolved(ctx context.Context) ([]adoptions.CascadeTask, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]adoptions.CascadeTask, 0)
	for _, t := range l.byID {
		if !t.Resolved() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (l *cascadeLog) MarkResolved(ctx context.Context, id string, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.byID[id]
	if !ok {
		return errTaskNotFound
	}
	t.Attempts++
	t.LastError = ""
	t.UpdatedAt = at
	t.ResolvedAt = &at
	l.byID[id] = t
	return nil
}

func (l *cascadeLog) RecordFailure(ctx context.Context, id, lastErr string, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.byID[id]
	if !ok {
		return errTaskNotFound
	}
	t.Attempts++
	t.LastError = lastErr
	t.UpdatedAt = at
	l.byID[id] = t
	return nil
}
