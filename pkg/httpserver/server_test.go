package httpserver_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookshelf/pkg/httpserver"
)

func waitForAddr(t *testing.T, srv *httpserver.Server) string {
	t.Helper()
	require.Eventually(t, func() bool { return srv.Addr() != nil }, 2*time.Second, 10*time.Millisecond)
	return srv.Addr().String()
}

func TestServer_RunUntilCancelled(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
	}()

	addr := waitForAddr(t, srv)
	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.NoError(t, srv.Shutdown(context.Background()), "repeated shutdown is a no-op")
}

func TestServer_ManualShutdown(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithLogger(slog.New(slog.NewTextHandler(buf, nil))),
	)

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), nil) }()

	waitForAddr(t, srv)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
	assert.Contains(t, buf.String(), "http server started")
	assert.Contains(t, buf.String(), "http server stopped")
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	err := httpserver.New(httpserver.WithAddr("256.0.0.1:99999")).Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestShutdownBeforeRun(t *testing.T) {
	t.Parallel()

	assert.NoError(t, httpserver.New().Shutdown(context.Background()))
}

func TestHealthHandlers(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	httpserver.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	ok := httpserver.Check{Name: "ok", Fn: func(context.Context) error { return nil }}
	rec = httptest.NewRecorder()
	httpserver.ReadinessHandler(log, time.Second, ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	buf := &bytes.Buffer{}
	failing := httpserver.Check{Name: "mongo", Fn: func(context.Context) error { return errors.New("no primary") }}
	rec = httptest.NewRecorder()
	httpserver.ReadinessHandler(slog.New(slog.NewTextHandler(buf, nil)), time.Second, ok, failing).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
	assert.Contains(t, buf.String(), "check=mongo")
	assert.Contains(t, buf.String(), "no primary")
}
