package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption/internal/domain/adoptions"
)

var errTaskNotFound = errors.New("cascade task not found")

// CascadeLog persiste en approval_cascades las aprobaciones con cascada pendiente.
type CascadeLog struct {
	db *sql.DB
}

var _ adoptions.CascadeLog = (*CascadeLog)(nil)

func NewCascadeLog(db *sql.DB) *CascadeLog {
	return &CascadeLog{db: db}
}

func (l *CascadeLog) Append(ctx context.Context, t adoptions.CascadeTask) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO approval_cascades (
			id, application_id, pet_id,
			attempts, last_error,
			created_at, updated_at, resolved_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		t.ID,
		t.ApplicationID,
		t.PetID,
		t.Attempts,
		t.LastError,
		t.CreatedAt,
		t.UpdatedAt,
		toNullTime(t.ResolvedAt),
	)
	return err
}

func (l *CascadeLog) ListUnresolved(ctx context.Context) ([]adoptions.CascadeTask, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT
			id, application_id, pet_id,
			attempts, last_error,
			created_at, updated_at, resolved_at
		FROM approval_cascades
		WHERE resolved_at IS NULL
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.CascadeTask, 0)
	for rows.Next() {
		var t adoptions.CascadeTask
		var resolved sql.NullTime
		if err := rows.Scan(
			&t.ID,
			&t.ApplicationID,
			&t.PetID,
			&t.Attempts,
			&t.LastError,
			&t.CreatedAt,
			&t.UpdatedAt,
			&resolved,
		); err != nil {
			return nil, err
		}
		if resolved.Valid {
			at := resolved.Time
			t.ResolvedAt = &at
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (l *CascadeLog) MarkResolved(ctx context.Context, id string, at time.Time) error {
	return l.exec(ctx, `
		UPDATE approval_cascades
		SET attempts = attempts + 1, last_error = '', updated_at = $2, resolved_at = $2
		WHERE id = $1
	`, id, at)
}

func (l *CascadeLog) RecordFailure(ctx context.Context, id, lastErr string, at time.Time) error {
	return l.exec(ctx, `
		UPDATE approval_cascades
		SET attempts = attempts + 1, last_error = $2, updated_at = $3
		WHERE id = $1
	`, id, lastErr, at)
}

func (l *CascadeLog) exec(ctx context.Context, query string, args ...any) error {
	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errTaskNotFound
	}
	return nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
