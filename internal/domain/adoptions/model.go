package adoptions

import "time"

// Status de una solicitud de adopción.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Application es la solicitud de un usuario para adoptar una mascota.
type Application struct {
	ID     string
	PetID  string
	UserID string // subject del identity provider

	Status Status

	FullName          string
	Email             string
	Phone             string
	Address           string
	HasOtherPets      bool
	OtherPetsDetails  string // solo si HasOtherPets
	ReasonForAdoption string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CascadeTask registra una aprobación cuya mascota no quedó marcada como adoptada.
// La reconciliación la reintenta de forma explícita.
type CascadeTask struct {
	ID            string
	ApplicationID string
	PetID         string

	Attempts  int
	LastError string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

func (t CascadeTask) Resolved() bool {
	return t.ResolvedAt != nil
}
