package profiles

import (
	"net/http"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/respond"
	"pet-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /me/profile. El router ya exigió sesión.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/me/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(svc, log))
		pr.Post("/", createProfileHandler(svc, log))
		pr.Patch("/", updateProfileHandler(svc, log))
	})
}

type createProfileRequest struct {
	// Si la sesión trae email, tiene prioridad sobre el del body.
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type updateProfileRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// getProfileHandler godoc
// @Summary Mi perfil
// @Tags profile
// @Produce json
// @Success 200 {object} profileResponse
// @Failure 401 {object} object "unauthorized"
// @Failure 404 {object} object "profile not found"
// @Router /me/profile [get]
func getProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, ok, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		if !ok {
			respond.Error(w, r, log, apperr.NotFound("profiles.get", "profile not found"))
			return
		}
		respond.JSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// createProfileHandler godoc
// @Summary Crear mi perfil
// @Description El id del perfil es el de la identidad de la sesión. `isAdmin` lo calcula el servidor.
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body createProfileRequest true "Datos del perfil"
// @Success 201 {object} profileResponse
// @Failure 400 {object} object "validación"
// @Failure 409 {object} object "profile already exists"
// @Router /me/profile [post]
func createProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createProfileRequest
		if err := validation.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		email := req.Email
		if claims.Email != "" {
			email = claims.Email
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Email:    email,
			FullName: req.FullName,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toProfileResponse(p))
	}
}

// updateProfileHandler godoc
// @Summary Editar mi perfil
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body updateProfileRequest true "Campos a modificar"
// @Success 200 {object} profileResponse
// @Failure 400 {object} object "validación"
// @Failure 404 {object} object "profile not found"
// @Router /me/profile [patch]
func updateProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateProfileRequest
		if err := validation.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		p, err := svc.Update(r.Context(), claims.UserID, Patch{
			FullName: req.FullName,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Address:   p.Address,
		IsAdmin:   p.IsAdmin,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
