package auth

import "time"

// Claims representa la identidad de la sesión.
type Claims struct {
	UserID string
	Email  string
}

// Credentials para signup/login contra el identity provider.
type Credentials struct {
	Email    string
	Password string
}

// Session es lo que el provider devuelve al autenticar.
type Session struct {
	Token     string
	Claims    Claims
	ExpiresAt time.Time
}
