package respond

import (
	"encoding/json"
	"net/http"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:        http.StatusBadRequest,
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindConflict:          http.StatusConflict,
	apperr.KindUnauthorized:      http.StatusUnauthorized,
	apperr.KindForbidden:         http.StatusForbidden,
	apperr.KindStore:             http.StatusBadGateway,
	apperr.KindUpload:            http.StatusBadGateway,
	apperr.KindCascadeIncomplete: http.StatusAccepted,
	apperr.KindInternal:          http.StatusInternalServerError,
}

// StatusFor traduce el Kind del error a status HTTP.
func StatusFor(err error) int {
	if st, ok := statusByKind[apperr.KindOf(err)]; ok {
		return st
	}
	return http.StatusInternalServerError
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error escribe el error con el formato común y loguea las fallas de infraestructura.
// Los mensajes internos de store/upload no se exponen al cliente.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(err)

	payload := errorPayload{Code: string(kind), Message: http.StatusText(status)}
	if e, ok := apperr.As(err); ok {
		switch kind {
		case apperr.KindStore, apperr.KindInternal:
		case apperr.KindUpload:
			payload.Message = e.Message
		default:
			if e.Message != "" {
				payload.Message = e.Message
			}
			payload.Fields = e.Fields
		}
	}

	if log != nil && status >= http.StatusInternalServerError {
		log.Error("request failed", map[string]any{
			"error":      err,
			"kind":       string(kind),
			"path":       r.URL.Path,
			"request_id": chimw.GetReqID(r.Context()),
		})
	}

	JSON(w, status, errorBody{Error: payload})
}
