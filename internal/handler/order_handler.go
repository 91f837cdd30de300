package handler

import (
	"net/http"
	"strconv"
	"strings"

	"jewelkart/internal/identity"
	"jewelkart/internal/model"
	"jewelkart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order HTTP requests, both the customer views and the
// admin fulfilment actions.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders requests, returning the caller's own orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	user, ok := identity.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity is required", h.logger)
		return
	}

	orders, err := h.service.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	user, ok := identity.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity is required", h.logger)
		return
	}

	orderID, ok := parseOrderID(w, strings.TrimPrefix(r.URL.Path, "/api/orders/"), h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), user, orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// AdminList handles GET /api/admin/orders requests. The router gates this
// route behind the admin role.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// AdminAction handles POST /api/admin/orders/{id}/confirm and
// POST /api/admin/orders/{id}/decline.
func (h *OrderHandler) AdminAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/orders/")
	idPart, action, found := strings.Cut(rest, "/")
	if !found {
		writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, "not found", h.logger)
		return
	}

	orderID, ok := parseOrderID(w, idPart, h.logger)
	if !ok {
		return
	}

	var (
		order *model.Order
		err   error
	)
	switch action {
	case "confirm":
		order, err = h.service.Confirm(r.Context(), orderID)
	case "decline":
		order, err = h.service.Decline(r.Context(), orderID)
	default:
		writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound, "not found", h.logger)
		return
	}

	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// parseOrderID validates a path segment as an order UUID, writing the error
// response itself on failure.
func parseOrderID(w http.ResponseWriter, raw string, logger zerolog.Logger) (uuid.UUID, bool) {
	if raw == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "order ID is required", logger)
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid order ID format", logger)
		return uuid.Nil, false
	}

	return orderID, true
}
