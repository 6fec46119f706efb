package identity

import (
	"errors"
	"net/http"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/respond"
	"pet-adoption/internal/platform/validation"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// AdminChecker lo cumple authz.Gate.
type AdminChecker interface {
	IsAdmin(c auth.Claims, ok bool) bool
}

// RegisterRoutes monta /auth/*. Con provider nil (modo dev) solo funciona /auth/me.
func RegisterRoutes(r chi.Router, provider auth.Provider, gate AdminChecker, log logger.Logger) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signupHandler(provider, log))
		ar.Post("/login", loginHandler(provider, log))
		ar.Post("/logout", logoutHandler(provider, log))
		ar.Get("/me", meHandler(gate, log))
	})
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type meResponse struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// signupHandler godoc
// @Summary Registrarse
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "Email y contraseña (mínimo 8 caracteres)"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} object "validación"
// @Failure 409 {object} object "email ya registrado"
// @Failure 501 {object} object "modo dev sin identity provider"
// @Router /auth/signup [post]
func signupHandler(provider auth.Provider, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			notEnabled(w)
			return
		}
		var req credentialsRequest
		if err := validation.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		sess, err := provider.SignUp(r.Context(), auth.Credentials{Email: req.Email, Password: req.Password})
		if err != nil {
			respond.Error(w, r, log, mapProviderError("auth.signup", err))
			return
		}
		respond.JSON(w, http.StatusCreated, toSessionResponse(sess))
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "Email y contraseña"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} object "credenciales inválidas"
// @Router /auth/login [post]
func loginHandler(provider auth.Provider, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			notEnabled(w)
			return
		}
		var req credentialsRequest
		if err := validation.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		sess, err := provider.Login(r.Context(), auth.Credentials{Email: req.Email, Password: req.Password})
		if err != nil {
			respond.Error(w, r, log, mapProviderError("auth.login", err))
			return
		}
		respond.JSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Tags auth
// @Param Authorization header string true "Bearer token"
// @Success 204
// @Router /auth/logout [post]
func logoutHandler(provider auth.Provider, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			notEnabled(w)
			return
		}
		token := middleware.BearerToken(r.Header.Get("Authorization"))
		if token == "" {
			respond.Error(w, r, log, apperr.Unauthorized("auth.logout", "missing bearer token"))
			return
		}
		if err := provider.Logout(r.Context(), token); err != nil {
			respond.Error(w, r, log, mapProviderError("auth.logout", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Identidad actual
// @Description Devuelve la identidad de la sesión e `isAdmin` calculado en el servidor. 401 si no hay sesión.
// @Tags auth
// @Produce json
// @Success 200 {object} meResponse
// @Failure 401 {object} object "unauthorized"
// @Router /auth/me [get]
func meHandler(gate AdminChecker, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := middleware.GetClaims(r.Context())
		if !ok {
			respond.Error(w, r, log, apperr.Unauthorized("auth.me", "authentication required"))
			return
		}
		respond.JSON(w, http.StatusOK, meResponse{
			UserID:  c.UserID,
			Email:   c.Email,
			IsAdmin: gate.IsAdmin(c, ok),
		})
	}
}

func mapProviderError(op string, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return apperr.Unauthorized(op, "invalid credentials")
	case errors.Is(err, auth.ErrEmailTaken):
		return apperr.Conflict(op, "email already registered")
	}
	return apperr.Store(op, err)
}

func notEnabled(w http.ResponseWriter) {
	respond.JSON(w, http.StatusNotImplemented, map[string]any{
		"error": map[string]string{"code": "not_implemented", "message": "identity provider disabled in dev mode"},
	})
}

func toSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		UserID:    s.Claims.UserID,
		Email:     s.Claims.Email,
		ExpiresAt: s.ExpiresAt,
	}
}
