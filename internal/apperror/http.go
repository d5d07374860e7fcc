package apperror

import (
	"encoding/json"
	"fmt"
	"net/http"
)

var httpStatus = map[Kind]int{
	KindValidation:             http.StatusBadRequest,
	KindInvalidAmount:          http.StatusBadRequest,
	KindUnauthorized:           http.StatusUnauthorized,
	KindInsufficientBalance:    http.StatusPaymentRequired,
	KindForbidden:              http.StatusForbidden,
	KindNotFound:               http.StatusNotFound,
	KindWalletNotFound:         http.StatusNotFound,
	KindTransactionFailed:      http.StatusUnprocessableEntity,
	KindTransactionRejected:    http.StatusUnprocessableEntity,
	KindWalletNotConnected:     http.StatusUnprocessableEntity,
	KindWalletConnectionFailed: http.StatusUnprocessableEntity,
	KindWalletSignatureFailed:  http.StatusUnprocessableEntity,
	KindRateLimited:            http.StatusTooManyRequests,
	KindNetworkError:           http.StatusBadGateway,
	KindOffline:                http.StatusServiceUnavailable,
	KindServiceUnavailable:     http.StatusServiceUnavailable,
	KindNetworkTimeout:         http.StatusGatewayTimeout,
	KindTransactionTimeout:     http.StatusGatewayTimeout,
}

// HTTPStatus returns the response status for kind. Kinds without a mapping
// are server errors.
func HTTPStatus(kind Kind) int {
	if status, ok := httpStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteJSON writes e as the response body with the status of its kind.
func WriteJSON(w http.ResponseWriter, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	if e.Kind == KindRateLimited {
		if after, ok := e.Context["retryAfter"]; ok {
			w.Header().Set("Retry-After", fmt.Sprint(after))
		}
	}
	w.WriteHeader(HTTPStatus(e.Kind))

	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(e)
}
