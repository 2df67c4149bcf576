// Package clientip resolves the caller's IP address for logging and rate
// limiting.
//
// Proxy headers are honored only when the service is configured to trust
// them (HTTP_TRUST_PROXY_HEADERS); otherwise the TCP peer address is used.
//
//	r.Use(clientip.Middleware(cfg.TrustProxyHeaders))
//	ip := clientip.GetIPFromContext(r.Context())
package clientip
