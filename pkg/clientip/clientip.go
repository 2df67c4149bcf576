package clientip

import (
	"net"
	"net/http"
	"strings"
)

// GetIP returns the client address, trusting proxy headers in this order:
// CF-Connecting-IP, DO-Connecting-IP, the first valid X-Forwarded-For entry,
// X-Real-IP. It falls back to RemoteAddr. Use only behind a proxy that
// overwrites these headers.
func GetIP(r *http.Request) string {
	for _, h := range []string{"CF-Connecting-IP", "DO-Connecting-IP"} {
		if ip := parseIP(r.Header.Get(h)); ip != "" {
			return ip
		}
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for ip := range strings.SplitSeq(forwarded, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	return RemoteIP(r)
}

// RemoteIP returns the address of the direct peer, ignoring all headers.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP returns the normalized form of s, or "" if s is not an IP address.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
