package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString fails when value is empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: ErrFieldRequired.Error(),
			Code:    "required",
		},
	}
}

// Required fails only on the empty string; whitespace counts as a value.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: ErrFieldRequired.Error(),
			Code:    "required",
		},
	}
}

// MaxLenString counts characters, not bytes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Code:    "max_length",
			Params:  map[string]any{"max": max},
		},
	}
}

// MaxLen limits the byte length of value. Use it where the limit is imposed
// by an encoding, such as bcrypt's 72-byte input.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d bytes long", max),
			Code:    "max_bytes",
			Params:  map[string]any{"max": max},
		},
	}
}
