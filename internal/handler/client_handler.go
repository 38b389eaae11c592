package handler

import (
	"net/http"

	"shopfront/internal/auth"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// ClientHandler handles client profile HTTP requests.
type ClientHandler struct {
	service service.ClientService
	logger  zerolog.Logger
}

// NewClientHandler creates a new client handler.
func NewClientHandler(service service.ClientService, logger zerolog.Logger) *ClientHandler {
	return &ClientHandler{
		service: service,
		logger:  logger.With().Str("handler", "client").Logger(),
	}
}

// Create handles POST /api/clients requests. Non-admins can only create a
// profile for themselves.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	var req model.ClientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if req.UserID == 0 {
		req.UserID = actor.ID
	}
	if !auth.CanAccess(actor.Roles, req.UserID, actor.ID) {
		writeDomainError(w, r, model.ErrForbidden, h.logger)
		return
	}

	client, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

// GetAll handles GET /api/clients requests. Admin only.
func (h *ClientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	clients, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, clients)
}

// GetByID handles GET /api/clients/{id} requests. Owner or admin.
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	client, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if !auth.CanAccess(actor.Roles, client.UserID, actor.ID) {
		writeDomainError(w, r, model.ErrForbidden, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// Update handles PATCH /api/clients/{id} requests. Owner or admin.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	existing, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	if !auth.CanAccess(actor.Roles, existing.UserID, actor.ID) {
		writeDomainError(w, r, model.ErrForbidden, h.logger)
		return
	}

	var req model.ClientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	client, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, client)
}

// Delete handles DELETE /api/clients/{id} requests. Admin only.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
