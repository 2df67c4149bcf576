package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookshelf/handler"
	"github.com/dmitrymomot/bookshelf/pkg/binder"
)

type greetRequest struct {
	Name string `json:"name"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	greet := func(ctx handler.Context, req greetRequest) handler.Response {
		return handler.JSON(map[string]string{"hello": req.Name})
	}

	t.Run("binds and renders", func(t *testing.T) {
		h := handler.Wrap(greet, handler.WithBinders[handler.Context, greetRequest](
			binder.Path(func(*http.Request, string) string { return "" }),
			binder.JSON(0),
		))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"reader"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"hello":"reader"}}`, rec.Body.String())
	})

	t.Run("binder error goes to error handler", func(t *testing.T) {
		var got error
		h := handler.Wrap(greet,
			handler.WithBinders[handler.Context, greetRequest](binder.JSON(0)),
			handler.WithErrorHandler[handler.Context, greetRequest](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`)))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.ErrorIs(t, got, binder.ErrMissingContentType)
	})

	t.Run("nil response", func(t *testing.T) {
		h := handler.Wrap(func(handler.Context, greetRequest) handler.Response { return nil })
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("error response uses HTTPError status", func(t *testing.T) {
		h := handler.Wrap(func(handler.Context, greetRequest) handler.Response {
			return handler.Error(handler.ErrConflict)
		})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "conflict")
	})

	t.Run("context exposes request", func(t *testing.T) {
		h := handler.Wrap(func(ctx handler.Context, _ greetRequest) handler.Response {
			return handler.JSON(ctx.Request().URL.Path, handler.WithJSONStatus(http.StatusCreated))
		})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/path", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"data":"/path"}`, rec.Body.String())
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	resp := handler.JSONError(http.StatusTooManyRequests,
		handler.ErrorDetail{Code: "too_many_requests", Message: "slow down"},
	)
	require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":{"code":"too_many_requests","message":"slow down"}}`, rec.Body.String())
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	err := handler.NewHTTPError(http.StatusForbidden, "forbidden")
	assert.Equal(t, "forbidden", err.Error())

	var target handler.HTTPError
	require.True(t, errors.As(errors.Join(errors.New("ctx"), err), &target))
	assert.Equal(t, http.StatusForbidden, target.Code)
}
