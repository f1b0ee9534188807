package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"logitrack/internal/service"
)

// jsonResponse writes a JSON response with the given status code. Encode
// failures happen after the header is committed, so they can only be logged.
func jsonResponse(logger *zap.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("encoding response", zap.Error(err))
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(logger *zap.Logger, w http.ResponseWriter, status int, message string) {
	jsonResponse(logger, w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// serviceError maps a service error to a stable response category. Store
// failures are logged with full detail and surface only as a generic
// internal error.
func serviceError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		jsonError(logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		jsonError(logger, w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		if GetClaims(r.Context()) == nil {
			jsonError(logger, w, http.StatusUnauthorized, "authentication required")
		} else {
			jsonError(logger, w, http.StatusForbidden, "insufficient permissions")
		}
	default:
		logger.Error("request failed",
			zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		jsonError(logger, w, http.StatusInternalServerError, "internal error")
	}
}
