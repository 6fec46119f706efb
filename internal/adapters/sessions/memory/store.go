package memory

import (
	"context"
	"sync"
	"time"

	"pet-adoption/internal/ports/auth"
)

type entry struct {
	claims    auth.Claims
	expiresAt time.Time
}

// Store es el SessionStore de desarrollo; las sesiones se pierden al reiniciar.
type Store struct {
	mu   sync.Mutex
	byID map[string]entry
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *Store) Put(ctx context.Context, sessionID string, c auth.Claims, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[sessionID] = entry{claims: c, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (auth.Claims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[sessionID]
	if !ok {
		return auth.Claims{}, auth.ErrSessionNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.byID, sessionID)
		return auth.Claims{}, auth.ErrSessionNotFound
	}
	return e.claims, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, sessionID)
	return nil
}
