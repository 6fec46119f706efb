package adoptions

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/validation"

	"github.com/google/uuid"
)

// PetStore es lo que la cascada necesita del catálogo de mascotas (*pets.Service lo cumple).
type PetStore interface {
	Get(ctx context.Context, id string) (pets.Pet, bool, error)
	Update(ctx context.Context, id string, in pets.Patch) (pets.Pet, error)
}

type Service struct {
	repo     Repository
	pets     PetStore
	cascades CascadeLog
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewService(repo Repository, petStore PetStore, cascades CascadeLog, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		pets:     petStore,
		cascades: cascades,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// SubmitInput no tiene Status: toda solicitud nueva nace pending.
type SubmitInput struct {
	PetID             string `validate:"required"`
	FullName          string `validate:"required"`
	Email             string `validate:"required,email"`
	Phone             string `validate:"required"`
	Address           string `validate:"required"`
	HasOtherPets      bool
	OtherPetsDetails  string `validate:"required_if=HasOtherPets true"`
	ReasonForAdoption string `validate:"required"`
}

// WithPet es una solicitud con su mascota embebida; Pet es nil si ya no existe.
type WithPet struct {
	Application Application
	Pet         *pets.Pet
}

func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (string, error) {
	const op = "adoptions.submit"

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", apperr.Unauthorized(op, "authentication required")
	}

	in = trimInput(in)
	if err := validation.Struct(in); err != nil {
		if e, ok := apperr.As(err); ok {
			return "", apperr.Validation(op, "invalid application", e.Fields)
		}
		return "", err
	}
	if !in.HasOtherPets {
		in.OtherPetsDetails = ""
	}

	_, ok, err := s.pets.Get(ctx, in.PetID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound(op, "pet not found")
	}

	now := s.now()
	a := Application{
		ID:                uuid.NewString(),
		PetID:             in.PetID,
		UserID:            userID,
		Status:            StatusPending,
		FullName:          in.FullName,
		Email:             in.Email,
		Phone:             in.Phone,
		Address:           in.Address,
		HasOtherPets:      in.HasOtherPets,
		OtherPetsDetails:  in.OtherPetsDetails,
		ReasonForAdoption: in.ReasonForAdoption,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return "", apperr.Store(op, err)
	}
	s.metrics.IncStatusChange(string(StatusPending))
	return a.ID, nil
}

// Get devuelve ok=false si la solicitud no existe.
func (s *Service) Get(ctx context.Context, id string) (Application, bool, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Application{}, false, nil
	}
	if err != nil {
		return Application{}, false, apperr.Store("adoptions.get", err)
	}
	return a, true, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Application, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Store("adoptions.list_all", err)
	}
	sortNewestFirst(items)
	return items, nil
}

// ListAllWithPets resuelve la mascota de cada solicitud (una lectura por mascota distinta).
func (s *Service) ListAllWithPets(ctx context.Context) ([]WithPet, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	cache := map[string]*pets.Pet{}
	out := make([]WithPet, 0, len(items))
	for _, a := range items {
		p, seen := cache[a.PetID]
		if !seen {
			got, ok, err := s.pets.Get(ctx, a.PetID)
			if err != nil {
				return nil, err
			}
			if ok {
				p = &got
			}
			cache[a.PetID] = p
		}
		out = append(out, WithPet{Application: a, Pet: p})
	}
	return out, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Application, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Store("adoptions.list_for_user", err)
	}
	sortNewestFirst(items)
	return items, nil
}

// UpdateStatus aplica la transición. Si es una aprobación, después marca la mascota como
// adoptada en un segundo paso no transaccional. Si ese paso falla la solicitud queda
// aprobada, se registra un CascadeTask y se devuelve la solicitud junto a un error
// cascade_incomplete.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (Application, error) {
	const op = "adoptions.update_status"

	if to != StatusApproved && to != StatusRejected {
		return Application{}, apperr.Validation(op, "invalid status", map[string]string{"status": "must be one of: approved rejected"})
	}

	current, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Application{}, apperr.NotFound(op, "application not found")
	}
	if err != nil {
		return Application{}, apperr.Store(op, err)
	}
	if !CanTransition(current.Status, to) {
		return Application{}, apperr.Conflict(op, "application is already "+string(current.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, current.Status, to, s.now()); err != nil {
		switch {
		case errors.Is(err, ErrStatusChanged):
			return Application{}, apperr.Conflict(op, "application status changed concurrently")
		case errors.Is(err, ErrNotFound):
			return Application{}, apperr.NotFound(op, "application not found")
		}
		return Application{}, apperr.Store(op, err)
	}
	s.metrics.IncStatusChange(string(to))

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		// El cambio de estado ya se escribió; la cascada sigue con el petId leído antes.
		updated = current
		updated.Status = to
		if to == StatusApproved {
			return updated, s.cascadeFailed(ctx, op, updated, err)
		}
		return updated, apperr.Store(op, err)
	}

	if to != StatusApproved {
		return updated, nil
	}

	adopted := pets.StatusAdopted
	if _, err := s.pets.Update(ctx, updated.PetID, pets.Patch{Status: &adopted}); err != nil {
		return updated, s.cascadeFailed(ctx, op, updated, err)
	}
	return updated, nil
}

func (s *Service) cascadeFailed(ctx context.Context, op string, a Application, cause error) error {
	now := s.now()
	task := CascadeTask{
		ID:            uuid.NewString(),
		ApplicationID: a.ID,
		PetID:         a.PetID,
		LastError:     cause.Error(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.metrics.IncCascadeFailure()
	fields := map[string]any{
		"error":          cause,
		"application_id": a.ID,
		"pet_id":         a.PetID,
		"task_id":        task.ID,
	}
	if err := s.cascades.Append(ctx, task); err != nil {
		fields["log_error"] = err.Error()
		s.log.Error("approval cascade failed and could not be recorded", fields)
	} else {
		s.log.Error("approval cascade failed, pending reconciliation", fields)
	}

	return apperr.CascadeIncomplete(op, "application approved but pet was not marked adopted", cause)
}

func trimInput(in SubmitInput) SubmitInput {
	in.PetID = strings.TrimSpace(in.PetID)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.OtherPetsDetails = strings.TrimSpace(in.OtherPetsDetails)
	in.ReasonForAdoption = strings.TrimSpace(in.ReasonForAdoption)
	return in
}

func sortNewestFirst(items []Application) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
