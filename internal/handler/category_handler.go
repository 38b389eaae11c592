package handler

import (
	"net/http"

	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// Create handles POST /api/categories requests. Admin only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := requireAdmin(w, r, h.logger)
	if actor == nil {
		return
	}

	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), &req, actor)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// GetAll handles GET /api/categories requests.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// GetByID handles GET /api/categories/{id} requests.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Update handles PATCH /api/categories/{id} requests. Admin only.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	category, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id} requests. Admin only.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
