package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

// ValidEmail validates that a string is a well-formed email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}

			// mail.ParseAddress accepts bare local parts and dotless
			// domains that no consumer-facing service would issue.
			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 || parts[0] == "" {
				return false
			}

			domain := parts[1]
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
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
		},
	}
}

// EqualString validates that a value matches another field's value exactly.
// Used for password confirmation inputs.
func EqualString(field, value, other string) Rule {
	return Rule{
		Check: func() bool {
			return value == other
		},
		Error: ValidationError{
			Field:   field,
			Message: "confirmation does not match",
		},
	}
}

// RequiredStringWhen applies RequiredString only when cond is true. When cond
// is false the rule always passes, which lets a form exempt fields from the
// required rule based on sibling field state.
func RequiredStringWhen(cond bool, field, value string) Rule {
	if !cond {
		return Rule{
			Check: func() bool { return true },
			Error: ValidationError{Field: field},
		}
	}
	return RequiredString(field, value)
}
