package images

import (
	"errors"
	"io"
	"net/http"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

const formField = "images"

// RegisterAdminRoutes monta POST /images. El router ya aplicó el gate de admin.
func RegisterAdminRoutes(r chi.Router, svc *Service, maxRequestBytes int64, log logger.Logger) {
	r.Post("/images", uploadImagesHandler(svc, maxRequestBytes, log))
}

type uploadImagesResponse struct {
	URLs []string `json:"urls"`
}

// uploadImagesHandler godoc
// @Summary Subir imágenes de mascotas
// @Description Solo admin. Multipart con uno o más archivos en el campo `images`. Devuelve las URLs en el mismo orden; si falla una subida no se devuelve ninguna.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param images formData file true "Imágenes"
// @Success 200 {object} uploadImagesResponse
// @Failure 400 {object} object "validación"
// @Failure 502 {object} object "image upload failed"
// @Router /admin/images [post]
func uploadImagesHandler(svc *Service, maxRequestBytes int64, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "images.upload"

		if maxRequestBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respond.Error(w, r, log, apperr.Validation(op, "request too large", map[string]string{formField: ErrTooLarge.Error()}))
				return
			}
			respond.Error(w, r, log, apperr.Validation(op, "invalid multipart form", map[string]string{"body": err.Error()}))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		headers := r.MultipartForm.File[formField]
		files := make([]File, 0, len(headers))
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				respond.Error(w, r, log, apperr.Validation(op, "unreadable file", map[string]string{fh.Filename: err.Error()}))
				return
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				respond.Error(w, r, log, apperr.Validation(op, "unreadable file", map[string]string{fh.Filename: err.Error()}))
				return
			}
			files = append(files, File{Name: fh.Filename, Data: data})
		}

		urls, err := svc.UploadBatch(r.Context(), files)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.JSON(w, http.StatusOK, uploadImagesResponse{URLs: urls})
	}
}
