// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/newsletter/pkg/httpx"
	subscriptiondomain "github.com/ghuser/newsletter/services/subscription/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Client errors carry the full wrapped message, so a rejected subscriber name
// is echoed back as "invalid subscriber name: <name> is not a valid subscriber name".
// In production 5xx messages are replaced by the status text.
func WriteError(w http.ResponseWriter, err error, isProduction bool) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, subscriptiondomain.ErrSubscriptionAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, subscriptiondomain.ErrInvalidSubscriberName),
		errors.Is(err, subscriptiondomain.ErrInvalidSubscriberEmail):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
