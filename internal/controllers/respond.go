package controllers

import (
	"errors"
	"net/http"

	"gentil/internal/auth"
	"gentil/internal/models"
	"gentil/internal/providers"
	"gentil/internal/reminder"
	"gentil/internal/services"
	"gentil/internal/streak"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// currentUser answers 401 when the request carries no authenticated user.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	}
	return id, ok
}

func statusFor(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidTimeOfDay):
		return http.StatusBadRequest
	case errors.Is(err, reminder.ErrInvalidWindow),
		errors.Is(err, reminder.ErrInvalidPreferences),
		errors.Is(err, reminder.ErrEmptyCatalog):
		return http.StatusUnprocessableEntity
	case errors.Is(err, reminder.ErrPermissionDenied),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, streak.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, streak.ErrPersistenceUnavailable),
		errors.Is(err, services.ErrStorageUnavailable),
		errors.Is(err, reminder.ErrSchedulingUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		resp = errorResponse{Error: "validation failed", Fields: verr.Fields}
	}
	if status >= http.StatusInternalServerError {
		logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		resp = errorResponse{Error: "internal error"}
		if status == http.StatusServiceUnavailable {
			resp.Error = "service temporarily unavailable"
		}
	}
	writeJSON(w, status, resp)
}
