package dto

import (
	"net/http"
	"strings"
)

// General error codes used directly by the HTTP layer
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes not
// listed here fall back to pattern rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// General
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,

	// Lookups
	ErrCodeNotFound:      http.StatusNotFound,
	"PRODUCT_NOT_FOUND":  http.StatusNotFound,
	"CUSTOMER_NOT_FOUND": http.StatusNotFound,
	"INVOICE_NOT_FOUND":  http.StatusNotFound,
	"USER_NOT_FOUND":     http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":            http.StatusConflict,
	"DAY_ALREADY_EXISTS":        http.StatusConflict,
	"DAY_ALREADY_OPEN":          http.StatusConflict,
	"MORNING_ALREADY_COMPLETED": http.StatusConflict,
	"CLOSING_ALREADY_COMPLETED": http.StatusConflict,
	"INVOICE_FINALIZED":         http.StatusConflict,

	// Business rules -> 422 Unprocessable Entity
	"NO_OPEN_DAY":             http.StatusUnprocessableEntity,
	"NO_DAY":                  http.StatusUnprocessableEntity,
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"INVALID_DAY_STATE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":      http.StatusUnprocessableEntity,
	"MORNING_NOT_COMPLETED":   http.StatusUnprocessableEntity,
	"INCOMPLETE_STOCK":        http.StatusUnprocessableEntity,
	"COUNTER_OPENING_EXCEEDED": http.StatusUnprocessableEntity,
	"NO_SHORTAGE":             http.StatusUnprocessableEntity,
	"PRICE_NOT_SET":           http.StatusUnprocessableEntity,
	"EMPTY_BILL":              http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unlisted INVALID_* codes are treated as bad input; unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
