package profiles

import "time"

// Profile enriquece una identidad externa; ID es el subject del identity provider.
type Profile struct {
	ID       string
	Email    string
	FullName string
	Phone    string
	Address  string

	// IsAdmin se deriva del email configurado; no lo decide el cliente.
	IsAdmin bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
