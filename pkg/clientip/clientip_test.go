package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookshelf/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "203.0.113.9:5555", want: "203.0.113.9"},
		{name: "remote addr without port", remoteAddr: "203.0.113.9", want: "203.0.113.9"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{
			name:       "cloudflare first",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "198.51.100.2"},
			remoteAddr: "10.0.0.1:1",
			want:       "198.51.100.1",
		},
		{
			name:       "first valid forwarded entry",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.2, 198.51.100.3"},
			remoteAddr: "10.0.0.1:1",
			want:       "198.51.100.2",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": " 198.51.100.4 "},
			remoteAddr: "10.0.0.1:1",
			want:       "198.51.100.4",
		},
		{
			name:       "invalid headers fall back",
			headers:    map[string]string{"CF-Connecting-IP": "nope", "X-Real-IP": "also-nope"},
			remoteAddr: "10.0.0.1:1",
			want:       "10.0.0.1",
		},
		{name: "garbage remote addr", remoteAddr: "not-an-ip", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	})

	newReq := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r.Header.Set("X-Forwarded-For", "198.51.100.7")
		return r
	}

	clientip.Middleware(false)(next).ServeHTTP(httptest.NewRecorder(), newReq())
	assert.Equal(t, "10.0.0.1", got, "headers ignored when proxies are not trusted")

	clientip.Middleware(true)(next).ServeHTTP(httptest.NewRecorder(), newReq())
	assert.Equal(t, "198.51.100.7", got)
}

func TestKeyFunc(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", clientip.KeyFunc(r))

	r = r.WithContext(clientip.SetIPToContext(r.Context(), "198.51.100.8"))
	assert.Equal(t, "198.51.100.8", clientip.KeyFunc(r))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.SetIPToContext(context.Background(), "198.51.100.9"))
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "198.51.100.9", attr.Value.String())
}
