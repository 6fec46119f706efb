package memory

import (
	"context"
	"sync"

	"pet-adoption/internal/ports/auth"
)

type accountRepo struct {
	mu      sync.RWMutex
	byEmail map[string]auth.Account
}

func NewAccountRepo() auth.AccountRepository {
	return &accountRepo{
		byEmail: make(map[string]auth.Account),
	}
}

func (r *accountRepo) Create(ctx context.Context, a auth.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[a.Email]; exists {
		return auth.ErrEmailTaken
	}
	r.byEmail[a.Email] = a
	return nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (auth.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byEmail[email]
	if !ok {
		return auth.Account{}, auth.ErrAccountNotFound
	}
	return a, nil
}
