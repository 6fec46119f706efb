package pets

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/validation"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string   `validate:"required"`
	Breed       string   `validate:"required"`
	Age         int      `validate:"min=0"`
	Description string
	Images      []string `validate:"min=1,dive,url"`
	Status      Status   `validate:"omitempty,oneof=available pending adopted"`
}

// Patch: nil = no tocar.
type Patch struct {
	Name        *string
	Breed       *string
	Age         *int
	Description *string
	Images      *[]string
	Status      *Status
}

// ListFilter se aplica en memoria sobre el listado completo.
type ListFilter struct {
	Query  string // substring case-insensitive sobre name o breed
	Status Status
}

func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return "", withOp(err, "pets.create", "invalid pet")
	}
	if in.Status == "" {
		in.Status = StatusAvailable
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Breed:       in.Breed,
		Age:         in.Age,
		Description: in.Description,
		Images:      append([]string(nil), in.Images...),
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return "", apperr.Store("pets.create", err)
	}
	return p.ID, nil
}

// Get devuelve ok=false (sin error) si la mascota no existe.
func (s *Service) Get(ctx context.Context, id string) (Pet, bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Pet{}, false, nil
	}
	if err != nil {
		return Pet{}, false, apperr.Store("pets.get", err)
	}
	return p, true, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Pet, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("pets.list", "invalid status filter", map[string]string{"status": "must be one of: available pending adopted"})
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Store("pets.list", err)
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Breed), q) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update aplica el patch y siempre refresca UpdatedAt.
// El estado solo puede pasar a adopted; ver CanTransition.
func (s *Service) Update(ctx context.Context, id string, in Patch) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Pet{}, apperr.NotFound("pets.update", "pet not found")
	}
	if err != nil {
		return Pet{}, apperr.Store("pets.update", err)
	}

	fields := map[string]string{}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			fields["name"] = "is required"
		}
		p.Name = v
	}
	if in.Breed != nil {
		v := strings.TrimSpace(*in.Breed)
		if v == "" {
			fields["breed"] = "is required"
		}
		p.Breed = v
	}
	if in.Age != nil {
		if *in.Age < 0 {
			fields["age"] = "must be at least 0"
		}
		p.Age = *in.Age
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Images != nil {
		if len(*in.Images) == 0 {
			fields["images"] = "must be at least 1"
		} else if err := validation.Var("images", *in.Images, "dive,url"); err != nil {
			fields["images"] = "must be valid urls"
		}
		p.Images = append([]string(nil), (*in.Images)...)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			fields["status"] = "must be one of: available pending adopted"
		}
	}
	if len(fields) > 0 {
		return Pet{}, apperr.Validation("pets.update", "invalid pet", fields)
	}

	if in.Status != nil {
		if !CanTransition(p.Status, *in.Status) {
			return Pet{}, apperr.Conflict("pets.update", "pet cannot move from "+string(p.Status)+" to "+string(*in.Status))
		}
		p.Status = *in.Status
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, apperr.NotFound("pets.update", "pet not found")
		}
		return Pet{}, apperr.Store("pets.update", err)
	}
	return p, nil
}

func withOp(err error, op, msg string) error {
	if e, ok := apperr.As(err); ok {
		return apperr.Validation(op, msg, e.Fields)
	}
	return err
}
