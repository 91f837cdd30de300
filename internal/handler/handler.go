package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"jewelkart/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// validate is shared across handlers; the validator caches struct metadata so
// a single instance is the intended usage.
var validate = validator.New()

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already on the wire; an encode failure here cannot
	// be reported to the client.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with a stable code and human message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Int("status", status).Msg(message)
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a domain error to its HTTP status. Unrecognised
// errors become an opaque 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeProductNotFound, model.ErrCodeSizeNotFound, model.ErrCodeOrderNotFound:
		status = http.StatusNotFound
	case model.ErrCodeInvalidQuantity, model.ErrCodeCartEmpty, model.ErrCodeInvalidJSON, model.ErrCodeMissingField:
		status = http.StatusBadRequest
	case model.ErrCodeOrderNotPending:
		status = http.StatusConflict
	case model.ErrCodeForbidden:
		status = http.StatusForbidden
	case model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	}

	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}

// decodeAndValidate decodes a JSON request body into dst and runs struct
// validation. Returns false after writing the error response itself.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
			return false
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, validationMessage(err), logger)
		return false
	}

	return true
}

// validationMessage renders the first field failure; one actionable problem
// beats a wall of them.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return "field '" + fe.Field() + "' is required"
		}
		return "field '" + fe.Field() + "' failed validation rule '" + fe.Tag() + "'"
	}
	return "request validation failed"
}
