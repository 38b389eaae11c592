package handler

import (
	"net/http"

	"shopfront/internal/auth"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles user and authentication HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// SignUp handles POST /api/users/signup requests.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// SignIn handles POST /api/users/signin requests.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.SignIn(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/users/me requests.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.logger)
	if user == nil {
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetAll handles GET /api/users requests. Admin only.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	users, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetByID handles GET /api/users/{id} requests. Owner or admin.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if !auth.CanAccess(actor.Roles, id, actor.ID) {
		writeDomainError(w, r, model.ErrForbidden, h.logger)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update handles PATCH /api/users/{id} requests. Owner or admin.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if !auth.CanAccess(actor.Roles, id, actor.ID) {
		writeDomainError(w, r, model.ErrForbidden, h.logger)
		return
	}

	var req model.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id} requests. Owner or admin.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if !auth.CanAccess(actor.Roles, id, actor.ID) {
		writeDomainError(w, r, model.ErrForbidden, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
