package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	merchantdomain "github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/platform"
)

// APIError is the JSON error shape returned by every endpoint.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string { return e.Code }

var (
	ErrNotFound           = &APIError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}
	ErrServiceUnavailable = &APIError{Status: http.StatusServiceUnavailable, Code: "service_unavailable", Message: "service unavailable"}
)

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request payload"}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Fields:  map[string]string{field: code},
	}
}

// AbortWithError maps domain errors onto HTTP statuses and writes the
// error payload. Unrecognized errors become a generic 500 so internal
// details never leak to the admin UI.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	switch {
	case errors.Is(err, invoicedomain.ErrOrderNotFound):
		apiErr = &APIError{Status: http.StatusNotFound, Code: invoicedomain.ErrOrderNotFound.Error(), Message: "order not found"}
	case errors.Is(err, invoicedomain.ErrSessionNotFound):
		apiErr = &APIError{Status: http.StatusNotFound, Code: invoicedomain.ErrSessionNotFound.Error(), Message: "preview session not found"}
	case errors.Is(err, invoicedomain.ErrInvalidOrder):
		apiErr = &APIError{Status: http.StatusUnprocessableEntity, Code: "invalid_order", Message: err.Error()}
	case errors.Is(err, invoicedomain.ErrUnknownField):
		apiErr = &APIError{Status: http.StatusBadRequest, Code: invoicedomain.ErrUnknownField.Error(), Message: "field is not editable"}
	case errors.Is(err, merchantdomain.ErrInvalidShop):
		apiErr = &APIError{Status: http.StatusBadRequest, Code: merchantdomain.ErrInvalidShop.Error(), Message: "invalid request"}
	case errors.Is(err, platform.ErrUnavailable),
		errors.Is(err, merchantdomain.ErrUnavailable):
		apiErr = &APIError{Status: http.StatusBadGateway, Code: "upstream_unavailable", Message: "upstream unavailable"}
	default:
		apiErr = &APIError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"}
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}
