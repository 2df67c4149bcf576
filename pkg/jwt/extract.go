package jwt

import "strings"

// BearerScheme is the authorization scheme prefix carried by clients.
const BearerScheme = "Bearer"

// TokenFromHeader pulls a token out of a raw Authorization header value.
//
// Accepted shapes are "Bearer <token>" (scheme compared case-insensitively) and
// a bare "<token>" without a scheme. Any other shape, including an empty
// header, yields ErrMissingToken.
func TokenFromHeader(header string) (string, error) {
	fields := strings.Fields(header)
	switch len(fields) {
	case 1:
		if strings.EqualFold(fields[0], BearerScheme) {
			return "", ErrMissingToken
		}
		return fields[0], nil
	case 2:
		if !strings.EqualFold(fields[0], BearerScheme) {
			return "", ErrMissingToken
		}
		return fields[1], nil
	default:
		return "", ErrMissingToken
	}
}
