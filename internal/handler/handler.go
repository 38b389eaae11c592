package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shopfront/internal/middleware"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes the standardised error body with the given status code.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger zerolog.Logger) {
	logger.Error().
		Str("error", message).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		StatusCode: status,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		Path:       r.URL.Path,
	})
}

// writeDomainError maps a service error onto an HTTP status. Unknown errors
// become opaque 500s.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, r, http.StatusInternalServerError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeNotFound:
		status = http.StatusNotFound
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON,
		model.ErrCodeStockInsufficient, model.ErrCodeInvalidQuantity,
		model.ErrCodeEmailTaken:
		status = http.StatusBadRequest
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	case model.ErrCodeForbidden:
		status = http.StatusForbidden
	}

	writeError(w, r, status, domainErr.Message, logger)
}

// decodeJSON decodes the request body into dst, rejecting malformed JSON.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

// pathID extracts the numeric {id} path value from the request.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError("invalid id")
	}
	return id, nil
}

// currentUser returns the authenticated user, or writes a 401 and returns nil.
func currentUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) *model.User {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeDomainError(w, r, model.ErrUnauthorised, logger)
		return nil
	}
	return user
}

// requireAdmin returns the authenticated user when they hold the admin role,
// or writes the appropriate error and returns nil.
func requireAdmin(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) *model.User {
	user := currentUser(w, r, logger)
	if user == nil {
		return nil
	}
	if !user.IsAdmin() {
		writeDomainError(w, r, model.ErrForbidden, logger)
		return nil
	}
	return user
}
