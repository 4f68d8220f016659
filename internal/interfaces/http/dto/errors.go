package dto

import (
	"errors"
	"net/http"

	"github.com/flower8718/backend/internal/domain/shared"
)

// General error codes
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Domain error codes as raised by the domain layer
const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeAlreadyExists        = "ALREADY_EXISTS"
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeInvalidState         = "INVALID_STATE"
	ErrCodeInsufficientStock    = "INSUFFICIENT_STOCK"
	ErrCodeInsufficientLotStock = "INSUFFICIENT_LOT_STOCK"
	ErrCodeNoTransfersInPeriod  = "NO_TRANSFERS_IN_PERIOD"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeAlreadyExists:        http.StatusConflict,
	ErrCodeInvalidInput:         http.StatusBadRequest,
	ErrCodeInvalidState:         http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:    http.StatusUnprocessableEntity,
	ErrCodeInsufficientLotStock: http.StatusUnprocessableEntity,
	ErrCodeNoTransfersInPeriod:  http.StatusUnprocessableEntity,
	ErrCodeInvalidStatus:        http.StatusBadRequest,
	ErrCodeUnauthorized:         http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError translates any error into a (status, code, message) triple.
// Domain errors carry their own code; everything else is internal.
func FromError(err error) (int, string, string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message
	}
	return http.StatusInternalServerError, ErrCodeInternal, "Internal server error"
}
