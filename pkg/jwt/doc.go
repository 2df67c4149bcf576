// Package jwt signs and verifies HS256 JSON Web Tokens.
//
// It is a thin layer over github.com/golang-jwt/jwt/v5 that pins the signing
// algorithm, makes the expiry claim mandatory, lets tests inject a clock and
// folds the library's error zoo into a handful of sentinel errors.
//
// # Usage
//
//	svc, err := jwt.NewFromString("super-secret")
//	if err != nil {
//		// handle error
//	}
//
//	type Claims struct {
//		UserID string `json:"uid"`
//		jwt.RegisteredClaims
//	}
//
//	token, err := svc.Generate(&Claims{
//		UserID: "123",
//		RegisteredClaims: jwt.RegisteredClaims{
//			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
//		},
//	})
//
//	var parsed Claims
//	if err := svc.Parse(token, &parsed); err != nil {
//		// handle invalid / expired token
//	}
//
// TokenFromHeader pulls the token out of a raw Authorization header value.
//
// # Error Handling
//
// Parse always returns one of the package sentinels (ErrInvalidToken,
// ErrExpiredToken, ErrInvalidSignature, ErrInvalidClaims,
// ErrUnexpectedSigningMethod) joined with the underlying library error, so
// errors.Is works for both.
package jwt
