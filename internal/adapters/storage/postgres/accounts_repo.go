package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption/internal/ports/auth"
)

type AccountsRepo struct {
	db *sql.DB
}

var _ auth.AccountRepository = (*AccountsRepo)(nil)

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

func (r *AccountsRepo) Create(ctx context.Context, a auth.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, created_at)
		VALUES ($1,$2,$3,$4)
	`, a.ID, a.Email, a.PasswordHash, a.CreatedAt)
	if isUniqueViolation(err) {
		return auth.ErrEmailTaken
	}
	return err
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (auth.Account, error) {
	var a auth.Account
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = $1
	`, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Account{}, auth.ErrAccountNotFound
	}
	return a, err
}
