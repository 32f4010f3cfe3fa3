// Package validation provides request field validation helpers.
//
// The Validator accumulates errors across a chain of checks so a handler can
// validate a whole request body and report the first failure.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"uiforge/internal/common/errors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]{3,32}$`)

// Validator accumulates validation errors
type Validator struct {
	errs []string
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) addError(format string, args ...interface{}) {
	v.errs = append(v.errs, fmt.Sprintf(format, args...))
}

// RequireString validates that a string is not empty after trimming
func (v *Validator) RequireString(value, name string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.addError("%s is required", name)
	}
	return v
}

// MaxLength validates that a string does not exceed max bytes
func (v *Validator) MaxLength(value, name string, max int) *Validator {
	if len(value) > max {
		v.addError("%s must be at most %d characters", name, max)
	}
	return v
}

// MinLength validates that a string is at least min bytes
func (v *Validator) MinLength(value, name string, min int) *Validator {
	if len(value) < min {
		v.addError("%s must be at least %d characters", name, min)
	}
	return v
}

// RequireOneOf validates that a value is one of the allowed values
func (v *Validator) RequireOneOf(value string, allowed []string, name string) *Validator {
	if value == "" {
		v.addError("%s is required", name)
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.addError("%s must be one of: %s", name, strings.Join(allowed, ", "))
	return v
}

// RequireEmail validates a syntactically plausible email address
func (v *Validator) RequireEmail(value, name string) *Validator {
	if value == "" {
		v.addError("%s is required", name)
		return v
	}
	if !emailPattern.MatchString(value) {
		v.addError("%s must be a valid email address", name)
	}
	return v
}

// RequireUsername validates the username character set and length
func (v *Validator) RequireUsername(value, name string) *Validator {
	if value == "" {
		v.addError("%s is required", name)
		return v
	}
	if !usernamePattern.MatchString(value) {
		v.addError("%s must be 3-32 characters of letters, digits, underscore or hyphen", name)
	}
	return v
}

// Valid reports whether all checks passed
func (v *Validator) Valid() bool {
	return len(v.errs) == 0
}

// Err returns a validation AppError covering all accumulated failures,
// or nil if every check passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return errors.ValidationError(strings.Join(v.errs, "; "))
}
