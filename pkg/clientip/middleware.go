package clientip

import "net/http"

// Middleware resolves the client IP once per request and stores it in the
// request context. With trustProxyHeaders false only RemoteAddr is used, so
// callers cannot pick their own address by sending forwarding headers.
func Middleware(trustProxyHeaders bool) func(http.Handler) http.Handler {
	resolve := RemoteIP
	if trustProxyHeaders {
		resolve = GetIP
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetIPToContext(r.Context(), resolve(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// KeyFunc returns the stored client IP; it fits ratelimiter.KeyFunc.
func KeyFunc(r *http.Request) string {
	if ip := GetIPFromContext(r.Context()); ip != "" {
		return ip
	}
	return RemoteIP(r)
}
