package pets

import "time"

// Status del listado de una mascota.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	}
	return false
}

// Pet es una mascota publicada para adopción.
type Pet struct {
	ID string

	Name        string
	Breed       string
	Age         int // años, >= 0
	Description string
	Images      []string // URLs ya resueltas por el image host; al menos una

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
