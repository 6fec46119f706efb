package pets

import (
	"net/http"
	"time"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/respond"
	"pet-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las rutas públicas de catálogo.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Get("/{petID}", getPetHandler(svc, log))
	})
}

// RegisterAdminRoutes monta alta y edición de mascotas. El router ya aplicó el gate de admin.
func RegisterAdminRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/pets", createPetHandler(svc, log))
	r.Patch("/pets/{petID}", updatePetHandler(svc, log))
}

type createPetRequest struct {
	Name        string   `json:"name" validate:"required"`
	Breed       string   `json:"breed" validate:"required"`
	Age         *int     `json:"age" validate:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Status      Status   `json:"status"`
}

type createPetResponse struct {
	ID string `json:"id"`
}

type updatePetRequest struct {
	Name        *string   `json:"name"`
	Breed       *string   `json:"breed"`
	Age         *int      `json:"age"`
	Description *string   `json:"description"`
	Images      *[]string `json:"images"`
	Status      *Status   `json:"status"`
}

type PetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve todas las mascotas, más recientes primero. `q` filtra por nombre o raza (substring, sin distinguir mayúsculas); `status` filtra por estado.
// @Tags pets
// @Produce json
// @Param q query string false "Texto a buscar en nombre o raza"
// @Param status query string false "available | pending | adopted"
// @Success 200 {array} PetResponse
// @Failure 400 {object} object "status inválido"
// @Failure 502 {object} object "store no disponible"
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), ListFilter{
			Query:  r.URL.Query().Get("q"),
			Status: Status(r.URL.Query().Get("status")),
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]PetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToResponse(p))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} PetResponse
// @Failure 404 {object} object "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		if !ok {
			respond.Error(w, r, log, apperr.NotFound("pets.get", "pet not found"))
			return
		}
		respond.JSON(w, http.StatusOK, ToResponse(p))
	}
}

// createPetHandler godoc
// @Summary Publicar mascota
// @Description Solo admin. Requiere al menos una imagen (URLs ya subidas vía /admin/images) y edad >= 0. El estado por defecto es `available`.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Debug-User-Email header string false "Solo en modo dev, email de la sesión"
// @Param Authorization header string false "Bearer token"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} createPetResponse
// @Failure 400 {object} object "validación"
// @Failure 401 {object} object "unauthorized"
// @Failure 403 {object} object "forbidden"
// @Router /admin/pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := validation.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		id, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Age:         *req.Age,
			Description: req.Description,
			Images:      req.Images,
			Status:      req.Status,
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.JSON(w, http.StatusCreated, createPetResponse{ID: id})
	}
}

// updatePetHandler godoc
// @Summary Editar mascota
// @Description Solo admin. PATCH parcial; siempre refresca updatedAt. El estado solo puede pasar a `adopted` (o repetirse); cualquier otro cambio responde 409.
// @Tags admin
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} PetResponse
// @Failure 400 {object} object "validación"
// @Failure 404 {object} object "pet not found"
// @Failure 409 {object} object "transición de estado inválida"
// @Router /admin/pets/{petID} [patch]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := validation.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), Patch{
			Name:        req.Name,
			Breed:       req.Breed,
			Age:         req.Age,
			Description: req.Description,
			Images:      req.Images,
			Status:      req.Status,
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.JSON(w, http.StatusOK, ToResponse(p))
	}
}

// ToResponse lo reutilizan otros módulos que embeben la mascota (applications?include=pet).
func ToResponse(p Pet) PetResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return PetResponse{
		ID:          p.ID,
		Name:        p.Name,
		Breed:       p.Breed,
		Age:         p.Age,
		Description: p.Description,
		Images:      images,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
