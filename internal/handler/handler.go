// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/Shivanand-hulikatti/hackhub/internal/repository"
	"github.com/Shivanand-hulikatti/hackhub/internal/service"
	"github.com/rs/zerolog"
)

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps a service or repository error to a status code.
// resource names the thing that was looked up, for the 404 message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Message:     "validation failed",
			FieldErrors: verr.Fields,
		})
	case errors.Is(err, identity.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrRegistrationClosed):
		writeError(w, http.StatusForbidden, service.ErrRegistrationClosed.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, service.ErrForbidden.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, service.ErrHackathonFull),
		errors.Is(err, service.ErrDuplicateMember),
		errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// caller returns the authenticated principal. Routes behind Authenticate
// always have one.
func caller(r *http.Request) identity.Principal {
	p, _ := identity.FromContext(r.Context())
	return p
}

// optionalCaller returns the principal when the request carried a valid
// token, or nil for anonymous requests.
func optionalCaller(r *http.Request) *identity.Principal {
	if p, ok := identity.FromContext(r.Context()); ok {
		return &p
	}
	return nil
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
