package authz

import (
	"net/http"
	"strings"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/respond"
	"pet-adoption/internal/ports/auth"
)

// Gate es la única regla de autorización: admin sii el email de la sesión es exactamente
// el email de administrador configurado. Se construye una vez al arrancar.
type Gate struct {
	adminEmail string
}

// NewGate recorta espacios del valor configurado. Vacío => nadie es admin.
func NewGate(adminEmail string) *Gate {
	return &Gate{adminEmail: strings.TrimSpace(adminEmail)}
}

// IsAdminEmail compara sin normalizar mayúsculas.
func (g *Gate) IsAdminEmail(email string) bool {
	if g == nil || g.adminEmail == "" {
		return false
	}
	return email == g.adminEmail
}

func (g *Gate) IsAdmin(c auth.Claims, ok bool) bool {
	return ok && c.UserID != "" && g.IsAdminEmail(c.Email)
}

// RequireAuth corta con 401 si no hay identidad en el contexto.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Error(w, r, nil, apperr.Unauthorized("authz", "authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin: 401 sin identidad, 403 si la identidad no es admin.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := middleware.GetClaims(r.Context())
		if !ok {
			respond.Error(w, r, nil, apperr.Unauthorized("authz", "authentication required"))
			return
		}
		if !g.IsAdmin(c, ok) {
			respond.Error(w, r, nil, apperr.Forbidden("authz", "administrator only"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
