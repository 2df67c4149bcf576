package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail accepts a bare addr-spec with a dotted domain. Display names
// ("Name <a@b.c>") are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value || addr.Name != "" {
				return false
			}

			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Code:    "email",
		},
	}
}
