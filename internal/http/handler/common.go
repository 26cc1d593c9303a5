package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/resolvedesk/quote-api/internal/domain"
	"github.com/resolvedesk/quote-api/internal/service"
)

var validate = validator.New()

// respondData sends a success envelope
func respondData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.Envelope{
		Success: true,
		Data:    data,
	})
}

// respondWithError sends an error envelope
func respondWithError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.Envelope{
		Success: false,
		Error:   &message,
	})
}

// respondValidationError flattens field errors into one message, fields in
// stable order
func respondValidationError(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		respondWithError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	messages := make([]string, 0, len(ve))
	for _, fe := range ve {
		messages = append(messages, formatValidationError(fe))
	}
	sort.Strings(messages)
	respondWithError(w, http.StatusBadRequest, strings.Join(messages, "; "))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	field := toJSONFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s: %s", field, domain.GetValidationMessage(fe.Tag()))
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrQuoteNotFound),
		errors.Is(err, service.ErrQuoteSuperseded):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoMatchingRule),
		errors.Is(err, service.ErrNoActiveRateProfile),
		errors.Is(err, service.ErrInvalidHourRange),
		errors.Is(err, service.ErrNotPending),
		errors.Is(err, service.ErrAlreadyApproved):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
