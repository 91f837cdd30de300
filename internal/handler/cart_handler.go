package handler

import (
	"net/http"
	"strings"

	"jewelkart/internal/identity"
	"jewelkart/internal/model"
	"jewelkart/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests. All routes operate on the cart of
// the identity resolved by the middleware.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

// UpdateItemRequest is the body of PUT /api/cart/items/{key}.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// Cart handles GET and DELETE on /api/cart.
func (h *CartHandler) Cart(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity is required", h.logger)
		return
	}

	var (
		view model.CartView
		err  error
	)
	switch r.Method {
	case http.MethodGet:
		view, err = h.service.Get(r.Context(), user.ID)
	case http.MethodDelete:
		view, err = h.service.Clear(r.Context(), user.ID)
	default:
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Items handles POST /api/cart/items plus PUT and DELETE on
// /api/cart/items/{key}.
func (h *CartHandler) Items(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity is required", h.logger)
		return
	}

	if r.Method == http.MethodPost {
		h.addItem(w, r, user.ID)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if key == "" || key == r.URL.Path {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "cart line key is required", h.logger)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateItem(w, r, user.ID, key)
	case http.MethodDelete:
		h.removeItem(w, r, user.ID, key)
	default:
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
	}
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request, userID string) {
	var req AddItemRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.Add(r.Context(), userID, req.ProductID, req.Size)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) updateItem(w http.ResponseWriter, r *http.Request, userID, key string) {
	var req UpdateItemRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), userID, key, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request, userID, key string) {
	view, err := h.service.Remove(r.Context(), userID, key)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
