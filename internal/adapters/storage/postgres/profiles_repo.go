package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-adoption/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

var _ profiles.Repository = (*ProfilesRepo)(nil)

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

// is_admin no se persiste: lo deriva el servicio en cada lectura.
func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, email, full_name, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, p.ID, p.Email, p.FullName, p.Phone, p.Address, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return profiles.ErrAlreadyExists
	}
	return err
}

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}

	var p profiles.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, phone, address, created_at, updated_at
		FROM user_profiles
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, err
}

func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET full_name = $2, phone = $3, address = $4, updated_at = $5
		WHERE id = $1
	`, p.ID, p.FullName, p.Phone, p.Address, p.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return profiles.ErrNotFound
	}
	return nil
}
