package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/adoptions"
)

type ApplicationsRepo struct {
	db *sql.DB
}

var _ adoptions.Repository = (*ApplicationsRepo)(nil)

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

const applicationColumns = `
	id, pet_id, user_id, status,
	full_name, email, phone, address,
	has_other_pets, other_pets_details, reason_for_adoption,
	created_at, updated_at`

func (r *ApplicationsRepo) Create(ctx context.Context, a adoptions.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.PetID,
		a.UserID,
		string(a.Status),
		a.FullName,
		a.Email,
		a.Phone,
		a.Address,
		a.HasOtherPets,
		a.OtherPetsDetails,
		a.ReasonForAdoption,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (adoptions.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Application{}, adoptions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM adoption_applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return adoptions.Application{}, adoptions.ErrNotFound
	}
	return a, err
}

// UpdateStatus es un compare-and-set sobre status; si no afecta filas distingue
// entre id inexistente y estado ya cambiado.
func (r *ApplicationsRepo) UpdateStatus(ctx context.Context, id string, from, to adoptions.Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_applications
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`, id, string(from), string(to), at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM adoption_applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return adoptions.ErrNotFound
	}
	return adoptions.ErrStatusChanged
}

func (r *ApplicationsRepo) ListAll(ctx context.Context) ([]adoptions.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM adoption_applications ORDER BY created_at DESC, id DESC`)
}

func (r *ApplicationsRepo) ListByUser(ctx context.Context, userID string) ([]adoptions.Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []adoptions.Application{}, nil
	}
	return r.list(ctx, `SELECT `+applicationColumns+` FROM adoption_applications WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *ApplicationsRepo) list(ctx context.Context, query string, args ...any) ([]adoptions.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(s scanner) (adoptions.Application, error) {
	var a adoptions.Application
	var status string
	if err := s.Scan(
		&a.ID,
		&a.PetID,
		&a.UserID,
		&status,
		&a.FullName,
		&a.Email,
		&a.Phone,
		&a.Address,
		&a.HasOtherPets,
		&a.OtherPetsDetails,
		&a.ReasonForAdoption,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return adoptions.Application{}, err
	}
	a.Status = adoptions.Status(status)
	return a, nil
}
