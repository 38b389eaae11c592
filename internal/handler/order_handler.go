package handler

import (
	"net/http"

	"shopfront/internal/auth"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	orders  service.OrderService
	clients service.ClientService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, clients service.ClientService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		clients: clients,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests. Admins may order on behalf of
// any client; other users always order as their own client profile.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if !actor.IsAdmin() {
		client, err := h.clients.GetByUserID(r.Context(), actor.ID)
		if err != nil {
			writeDomainError(w, r, err, h.logger)
			return
		}
		if client == nil {
			writeError(w, r, http.StatusBadRequest, "no client profile for user", h.logger)
			return
		}
		if req.ClientID != 0 && req.ClientID != client.ID {
			writeDomainError(w, r, model.ErrForbidden, h.logger)
			return
		}
		req.ClientID = client.ID
	}

	order, err := h.orders.CreateOrder(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Pay handles POST /api/orders/{id}/pay requests. Owner or admin.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	if !h.canAccessOrder(actor, order) {
		writeDomainError(w, r, model.ErrForbidden, h.logger)
		return
	}

	var req model.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	order, err = h.orders.ProcessPayment(r.Context(), id, req.Success)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// GetAll handles GET /api/orders requests. Admin only.
func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	orders, err := h.orders.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests. Owner or admin.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(w, r, h.logger)
	if actor == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	if !h.canAccessOrder(actor, order) {
		writeDomainError(w, r, model.ErrForbidden, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/{id} requests. Admin only.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	var req model.UpdateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/orders/{id} requests. Admin only.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// canAccessOrder reports whether the actor owns the order's client profile
// or is an admin.
func (h *OrderHandler) canAccessOrder(actor *model.User, order *model.Order) bool {
	if order.Client == nil {
		return actor.IsAdmin()
	}
	return auth.CanAccess(actor.Roles, order.Client.UserID, actor.ID)
}
