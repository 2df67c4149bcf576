package validator

import "errors"

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrFieldRequired    = errors.New("field is required")
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidFormat    = errors.New("invalid format")
)
