package handler

import (
	"errors"
	"net/http"

	"jewelkart/internal/cart"
	"jewelkart/internal/checkout"
	"jewelkart/internal/identity"
	"jewelkart/internal/model"
	"jewelkart/internal/payment"
	"jewelkart/internal/stock"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles POST /api/checkout.
type CheckoutHandler struct {
	carts        *cart.Store
	orchestrator *checkout.Orchestrator
	logger       zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(carts *cart.Store, orchestrator *checkout.Orchestrator, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		carts:        carts,
		orchestrator: orchestrator,
		logger:       logger.With().Str("handler", "checkout").Logger(),
	}
}

// CheckoutRequest is the body of POST /api/checkout.
type CheckoutRequest struct {
	Address struct {
		FirstName  string `json:"firstName" validate:"required"`
		LastName   string `json:"lastName" validate:"required"`
		Phone      string `json:"phone"`
		Address1   string `json:"address1" validate:"required"`
		Suburb     string `json:"suburb"`
		Town       string `json:"town" validate:"required"`
		PostalCode string `json:"postalCode" validate:"required"`
		Country    string `json:"country" validate:"required"`
	} `json:"address"`
	Payment struct {
		SavedCardID string `json:"savedCardId"`
		CardNumber  string `json:"cardNumber"`
		ExpMonth    int    `json:"expMonth"`
		ExpYear     int    `json:"expYear"`
		CVC         string `json:"cvc"`
	} `json:"payment"`
}

// violationPayload is one over-stock line in a 409 response.
type violationPayload struct {
	Key       string `json:"key"`
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// Checkout runs a checkout attempt for the resolved user. Failure statuses
// are distinct per stage: 409 for stock violations, 402 for payment declines,
// 500 with a dedicated code when payment was captured but the commit failed.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	user, ok := identity.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "user identity is required", h.logger)
		return
	}

	var req CheckoutRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	if req.Payment.SavedCardID == "" && req.Payment.CardNumber == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "a saved card or card number is required", h.logger)
		return
	}

	checkoutReq := checkout.Request{
		User: user,
		Address: model.Address{
			FirstName:  req.Address.FirstName,
			LastName:   req.Address.LastName,
			Phone:      req.Address.Phone,
			Address1:   req.Address.Address1,
			Suburb:     req.Address.Suburb,
			Town:       req.Address.Town,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		},
		Instrument: payment.Instrument{
			SavedCardID: req.Payment.SavedCardID,
			CardNumber:  req.Payment.CardNumber,
			ExpMonth:    req.Payment.ExpMonth,
			ExpYear:     req.Payment.ExpYear,
			CVC:         req.Payment.CVC,
			Email:       user.Email,
		},
	}

	order, err := h.orchestrator.Checkout(r.Context(), h.carts.Get(user.ID), checkoutReq)
	if err != nil {
		h.writeCheckoutError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// writeCheckoutError maps the orchestrator's stage-typed errors to HTTP
// responses.
func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, err error) {
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusConflict, struct {
			Error      string             `json:"error"`
			Message    string             `json:"message"`
			Violations []violationPayload `json:"violations"`
		}{
			Error:      model.ErrCodeStockInsufficient,
			Message:    "one or more cart lines exceed available stock",
			Violations: violationPayloads(validationErr.Violations),
		})
		return
	}

	var paymentErr *checkout.PaymentError
	if errors.As(err, &paymentErr) {
		writeError(w, http.StatusPaymentRequired, model.ErrCodePaymentDeclined, paymentErr.Error(), h.logger)
		return
	}

	var commitErr *checkout.CommitError
	if errors.As(err, &commitErr) {
		// The client must be able to tell this apart from a retryable 500:
		// the charge went through.
		writeJSON(w, http.StatusInternalServerError, struct {
			Error   string `json:"error"`
			Message string `json:"message"`
			OrderID string `json:"orderId"`
		}{
			Error:   model.ErrCodeCommitFailed,
			Message: "payment was captured but the order could not be recorded; support has been notified",
			OrderID: commitErr.OrderID.String(),
		})
		return
	}

	writeDomainError(w, err, h.logger)
}

func violationPayloads(violations []stock.Violation) []violationPayload {
	out := make([]violationPayload, len(violations))
	for i, v := range violations {
		out[i] = violationPayload{
			Key:       v.Line.Key,
			ProductID: v.Line.ProductID,
			Size:      v.Line.Size,
			Requested: v.Requested,
			Available: v.Available,
		}
	}
	return out
}
