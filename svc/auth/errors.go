package auth

import "errors"

// Kind classifies the errors surfaced by the auth boundary. Callers branch on
// the kind instead of matching message text.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindNotLoggedIn
	KindInvalidToken
	KindPersistenceFailure
	KindAlreadyExists
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindNotLoggedIn:
		return "not_logged_in"
	case KindInvalidToken:
		return "invalid_token"
	case KindPersistenceFailure:
		return "persistence_failure"
	case KindAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// Error is a typed auth error. Message is safe to show to end users.
// Two errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the internal cause for logging. It never reaches clients.
func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "incorrect credentials"}
	ErrNotLoggedIn        = &Error{Kind: KindNotLoggedIn, Message: "not logged in"}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken, Message: "invalid token"}
	ErrPersistenceFailure = &Error{Kind: KindPersistenceFailure, Message: "operation failed"}
	ErrAlreadyExists      = &Error{Kind: KindAlreadyExists, Message: "username or email is already registered"}
)

// Store-level errors returned by Store implementations.
var (
	ErrIdentityNotFound = errors.New("identity not found")
	ErrIdentityExists   = errors.New("identity already exists")
)

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PersistenceFailure returns a generic failure with a user-facing message.
// The store error must be logged by the caller; it is not attached.
func PersistenceFailure(message string) error {
	return &Error{Kind: KindPersistenceFailure, Message: message}
}

func invalidToken(cause error) error {
	return &Error{Kind: KindInvalidToken, Message: ErrInvalidToken.Message, cause: cause}
}
