package adoptions

import (
	"net/http"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/respond"
	"pet-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"
)

// RegisterRoutes monta las rutas de usuario autenticado.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/applications", submitApplicationHandler(svc, log))
	r.Get("/me/applications", listMyApplicationsHandler(svc, log))
}

// RegisterAdminRoutes monta la revisión de solicitudes y la reconciliación. El router ya aplicó el gate de admin.
func RegisterAdminRoutes(r chi.Router, svc *Service, rec *Reconciler, log logger.Logger) {
	r.Get("/applications", listApplicationsHandler(svc, log))
	r.Post("/applications/{applicationID}/status", updateStatusHandler(svc, log))
	r.Post("/reconcile", reconcileHandler(rec, log))
}

type submitApplicationRequest struct {
	PetID             string `json:"petId"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	HasOtherPets      bool   `json:"hasOtherPets"`
	OtherPetsDetails  string `json:"otherPetsDetails"`
	ReasonForAdoption string `json:"reasonForAdoption"`
	// Se acepta pero se ignora: toda solicitud nueva es pending.
	Status string `json:"status,omitempty"`
}

type submitApplicationResponse struct {
	ID string `json:"id"`
}

type updateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

type ApplicationResponse struct {
	ID                string            `json:"id"`
	PetID             string            `json:"petId"`
	UserID            string            `json:"userId"`
	Status            Status            `json:"status"`
	FullName          string            `json:"fullName"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	Address           string            `json:"address"`
	HasOtherPets      bool              `json:"hasOtherPets"`
	OtherPetsDetails  string            `json:"otherPetsDetails,omitempty"`
	ReasonForAdoption string            `json:"reasonForAdoption"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
	Pet               *pets.PetResponse `json:"pet,omitempty"`
}

type updateStatusResponse struct {
	Application ApplicationResponse `json:"application"`
	Warning     string              `json:"warning,omitempty"`
}

type reconcileResponse struct {
	Processed int      `json:"processed"`
	Resolved  int      `json:"resolved"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// submitApplicationHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Requiere sesión. La solicitud siempre se crea en estado `pending`, aunque el cliente envíe otro `status`. `otherPetsDetails` es obligatorio si `hasOtherPets` es true.
// @Tags applications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token"
// @Param payload body submitApplicationRequest true "Datos de la solicitud"
// @Success 201 {object} submitApplicationResponse
// @Failure 400 {object} object "validación"
// @Failure 401 {object} object "unauthorized"
// @Failure 404 {object} object "pet not found"
// @Router /applications [post]
func submitApplicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req submitApplicationRequest
		if err := validation.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		id, err := svc.Submit(r.Context(), claims.UserID, SubmitInput{
			PetID:             req.PetID,
			FullName:          req.FullName,
			Email:             req.Email,
			Phone:             req.Phone,
			Address:           req.Address,
			HasOtherPets:      req.HasOtherPets,
			OtherPetsDetails:  req.OtherPetsDetails,
			ReasonForAdoption: req.ReasonForAdoption,
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.JSON(w, http.StatusCreated, submitApplicationResponse{ID: id})
	}
}

// listMyApplicationsHandler godoc
// @Summary Mis solicitudes
// @Description Solicitudes del usuario de la sesión, más recientes primero.
// @Tags applications
// @Produce json
// @Success 200 {array} ApplicationResponse
// @Failure 401 {object} object "unauthorized"
// @Router /me/applications [get]
func listMyApplicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListForUser(r.Context(), claims.UserID)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]ApplicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// listApplicationsHandler godoc
// @Summary Listar todas las solicitudes
// @Description Solo admin. Con `include=pet` cada solicitud trae su mascota embebida (omitida si ya no existe).
// @Tags admin
// @Produce json
// @Param include query string false "pet"
// @Success 200 {array} ApplicationResponse
// @Failure 401 {object} object "unauthorized"
// @Failure 403 {object} object "forbidden"
// @Router /admin/applications [get]
func listApplicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("include") == "pet" {
			items, err := svc.ListAllWithPets(r.Context())
			if err != nil {
				respond.Error(w, r, log, err)
				return
			}
			out := make([]ApplicationResponse, 0, len(items))
			for _, it := range items {
				resp := ToResponse(it.Application)
				if it.Pet != nil {
					p := pets.ToResponse(*it.Pet)
					resp.Pet = &p
				}
				out = append(out, resp)
			}
			respond.JSON(w, http.StatusOK, out)
			return
		}

		items, err := svc.ListAll(r.Context())
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		out := make([]ApplicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// updateStatusHandler godoc
// @Summary Aprobar o rechazar una solicitud
// @Description Solo admin. `pending` pasa a `approved` o `rejected`; ambos son terminales (409). Aprobar marca la mascota como `adopted` en un segundo paso; si ese paso falla responde 202 con la solicitud aprobada y un `warning`, y la tarea queda para `POST /admin/reconcile`.
// @Tags admin
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} updateStatusResponse
// @Success 202 {object} updateStatusResponse "aprobada, cascada pendiente"
// @Failure 400 {object} object "estado inválido"
// @Failure 404 {object} object "application not found"
// @Failure 409 {object} object "solicitud ya resuelta"
// @Router /admin/applications/{applicationID}/status [post]
func updateStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := validation.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		a, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "applicationID"), req.Status)
		if err != nil {
			if e, ok := apperr.As(err); ok && e.Kind == apperr.KindCascadeIncomplete {
				respond.JSON(w, http.StatusAccepted, updateStatusResponse{
					Application: ToResponse(a),
					Warning:     e.Message,
				})
				return
			}
			respond.Error(w, r, log, err)
			return
		}

		respond.JSON(w, http.StatusOK, updateStatusResponse{Application: ToResponse(a)})
	}
}

// reconcileHandler godoc
// @Summary Reconciliar cascadas de aprobación
// @Description Solo admin. Reintenta marcar como `adopted` las mascotas de aprobaciones cuya cascada falló.
// @Tags admin
// @Produce json
// @Success 200 {object} reconcileResponse
// @Router /admin/reconcile [post]
func reconcileHandler(rec *Reconciler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := rec.Run(r.Context())
		if err != nil && rep.Processed == 0 {
			respond.Error(w, r, log, err)
			return
		}

		out := reconcileResponse{
			Processed: rep.Processed,
			Resolved:  rep.Resolved,
			Failed:    rep.Failed,
		}
		for _, e := range multierr.Errors(err) {
			out.Errors = append(out.Errors, e.Error())
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

func ToResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                a.ID,
		PetID:             a.PetID,
		UserID:            a.UserID,
		Status:            a.Status,
		FullName:          a.FullName,
		Email:             a.Email,
		Phone:             a.Phone,
		Address:           a.Address,
		HasOtherPets:      a.HasOtherPets,
		OtherPetsDetails:  a.OtherPetsDetails,
		ReasonForAdoption: a.ReasonForAdoption,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
