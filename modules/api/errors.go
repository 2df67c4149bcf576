package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/bookshelf/handler"
	"github.com/dmitrymomot/bookshelf/pkg/ratelimiter"
	"github.com/dmitrymomot/bookshelf/svc/auth"
)

// AuthErrorMapper maps auth error kinds to HTTP statuses. The response carries
// the error's fixed message, never its cause.
func AuthErrorMapper(err error) (int, handler.ErrorDetail, bool) {
	kind := auth.KindOf(err)

	var status int
	switch kind {
	case auth.KindInvalidCredentials, auth.KindNotLoggedIn, auth.KindInvalidToken:
		status = http.StatusUnauthorized
	case auth.KindAlreadyExists:
		status = http.StatusConflict
	case auth.KindPersistenceFailure:
		status = http.StatusInternalServerError
	default:
		return 0, handler.ErrorDetail{}, false
	}

	return status, handler.ErrorDetail{Code: kind.String(), Message: err.Error()}, true
}

// RateLimitDenied writes the JSON 429 for ratelimiter.Middleware, which has
// already set Retry-After.
func RateLimitDenied(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
	_ = handler.JSONError(http.StatusTooManyRequests, handler.ErrorDetail{
		Code:    handler.ErrTooManyRequests.Key,
		Message: "too many attempts, try again later",
	}).Render(w, r)
}

// RateLimitFailed returns a ratelimiter.ErrorHandler that routes limiter
// failures through errorHandler as a 503.
func RateLimitFailed(errorHandler handler.ErrorHandler[handler.Context]) ratelimiter.ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		errorHandler(handler.NewContext(w, r), errors.Join(handler.ErrServiceUnavailable, err))
	}
}
