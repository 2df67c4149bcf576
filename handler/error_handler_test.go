package handler_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/bookshelf/handler"
	"github.com/dmitrymomot/bookshelf/pkg/binder"
	"github.com/dmitrymomot/bookshelf/pkg/requestid"
	"github.com/dmitrymomot/bookshelf/pkg/validator"
)

var errDomain = errors.New("domain says no")

func domainMapper(err error) (int, handler.ErrorDetail, bool) {
	if errors.Is(err, errDomain) {
		return http.StatusConflict, handler.ErrorDetail{Code: "taken", Message: "already taken"}, true
	}
	return 0, handler.ErrorDetail{}, false
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"mapped", fmt.Errorf("wrap: %w", errDomain), http.StatusConflict, "taken"},
		{"validation", validator.Apply(validator.RequiredString("title", "")), http.StatusUnprocessableEntity, "validation_error"},
		{"bad json", fmt.Errorf("%w: eof", binder.ErrFailedToParseJSON), http.StatusBadRequest, "bad_request"},
		{"bad path", binder.ErrFailedToParsePath, http.StatusBadRequest, "bad_request"},
		{"media type", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"http error", handler.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("dial tcp: refused"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := handler.Classify(tt.err, domainMapper)
			assert.Equal(t, tt.status, info.Status)
			assert.Equal(t, tt.code, info.Detail.Code)
		})
	}

	info := handler.Classify(validator.Apply(validator.RequiredString("title", "")))
	assert.Equal(t, map[string][]string{"title": {"field is required"}}, info.Detail.Details)
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("hides internal causes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		eh := handler.NewErrorHandler(slog.New(slog.NewTextHandler(buf, nil)))

		req := httptest.NewRequest(http.MethodPost, "/api/me/books", nil)
		req = req.WithContext(requestid.WithContext(req.Context(), "req-123"))
		rec := httptest.NewRecorder()

		eh(handler.NewContext(rec, req), errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
		assert.JSONEq(t, `{"error":{"code":"internal_server_error","message":"internal server error"}}`, rec.Body.String())

		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "req-123")
		assert.Contains(t, buf.String(), "connection refused")
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		buf := &bytes.Buffer{}
		eh := handler.NewErrorHandler(slog.New(slog.NewTextHandler(buf, nil)), domainMapper)

		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodPost, "/api/signup", nil)), errDomain)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":{"code":"taken","message":"already taken"}}`, rec.Body.String())
		assert.Contains(t, buf.String(), "level=WARN")
	})
}
