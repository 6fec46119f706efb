package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/validation"
)

// AdminChecker decide si un email tiene capacidad de administrador (authz.Gate lo cumple).
type AdminChecker interface {
	IsAdminEmail(email string) bool
}

type Service struct {
	repo  Repository
	admin AdminChecker
	now   func() time.Time
}

func NewService(repo Repository, admin AdminChecker) *Service {
	return &Service{
		repo:  repo,
		admin: admin,
		now:   time.Now,
	}
}

type CreateInput struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
	Phone    string
	Address  string
}

type Patch struct {
	FullName *string
	Phone    *string
	Address  *string
}

// Create usa el subject de la identidad como id; hay a lo sumo un perfil por identidad.
func (s *Service) Create(ctx context.Context, id string, in CreateInput) (Profile, error) {
	const op = "profiles.create"

	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, apperr.Unauthorized(op, "authentication required")
	}

	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if err := validation.Struct(in); err != nil {
		if e, ok := apperr.As(err); ok {
			return Profile{}, apperr.Validation(op, "invalid profile", e.Fields)
		}
		return Profile{}, err
	}

	now := s.now()
	p := Profile{
		ID:        id,
		Email:     in.Email,
		FullName:  in.FullName,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.IsAdmin = s.isAdmin(p.Email)

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return Profile{}, apperr.Conflict(op, "profile already exists")
		}
		return Profile{}, apperr.Store(op, err)
	}
	return p, nil
}

// Get devuelve ok=false si la identidad todavía no tiene perfil.
func (s *Service) Get(ctx context.Context, id string) (Profile, bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, apperr.Store("profiles.get", err)
	}
	p.IsAdmin = s.isAdmin(p.Email)
	return p, true, nil
}

func (s *Service) Update(ctx context.Context, id string, in Patch) (Profile, error) {
	const op = "profiles.update"

	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Profile{}, apperr.NotFound(op, "profile not found")
	}
	if err != nil {
		return Profile{}, apperr.Store(op, err)
	}

	if in.FullName != nil {
		v := strings.TrimSpace(*in.FullName)
		if v == "" {
			return Profile{}, apperr.Validation(op, "invalid profile", map[string]string{"fullName": "is required"})
		}
		p.FullName = v
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	p.IsAdmin = s.isAdmin(p.Email)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, apperr.NotFound(op, "profile not found")
		}
		return Profile{}, apperr.Store(op, err)
	}
	return p, nil
}

func (s *Service) isAdmin(email string) bool {
	return s.admin != nil && s.admin.IsAdminEmail(email)
}
