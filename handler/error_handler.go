package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/bookshelf/pkg/binder"
	"github.com/dmitrymomot/bookshelf/pkg/logger"
	"github.com/dmitrymomot/bookshelf/pkg/requestid"
	"github.com/dmitrymomot/bookshelf/pkg/validator"
)

// ErrorMapper translates an application error into a status and a
// client-safe detail. It returns ok=false for errors it does not recognize.
type ErrorMapper func(err error) (status int, detail ErrorDetail, ok bool)

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	Status int
	Detail ErrorDetail
}

// Classify resolves err through mappers first, then the built-in rules for
// validation, binding and HTTPError. Anything else is a 500 with a generic
// message.
func Classify(err error, mappers ...ErrorMapper) ErrorInfo {
	for _, m := range mappers {
		if status, detail, ok := m(err); ok {
			return ErrorInfo{Status: status, Detail: detail}
		}
	}

	if errs := validator.ExtractValidationErrors(err); errs != nil {
		return ErrorInfo{
			Status: http.StatusUnprocessableEntity,
			Detail: ErrorDetail{Code: "validation_error", Message: "validation failed", Details: errs.Map()},
		}
	}

	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrorInfo{
			Status: http.StatusUnsupportedMediaType,
			Detail: ErrorDetail{Code: ErrUnsupportedMediaType.Key, Message: "expected application/json body"},
		}
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParsePath):
		return ErrorInfo{
			Status: http.StatusBadRequest,
			Detail: ErrorDetail{Code: ErrBadRequest.Key, Message: "malformed request"},
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{
			Status: httpErr.Code,
			Detail: ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)},
		}
	}

	return ErrorInfo{
		Status: http.StatusInternalServerError,
		Detail: ErrorDetail{Code: ErrInternalServerError.Key, Message: "internal server error"},
	}
}

// NewErrorHandler returns an ErrorHandler that logs the full error with the
// request id and responds with the classified JSON error. Client errors log
// at warn, server errors at error.
func NewErrorHandler(log *slog.Logger, mappers ...ErrorMapper) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err, mappers...)

		level := slog.LevelWarn
		if info.Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.Group("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status_code", info.Status),
			),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(info.Status, info.Detail).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}
