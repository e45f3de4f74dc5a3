// Package inputval collects field-level validation failures.
//
// Validation is not fail-fast: a request is checked field by field and the
// response lists every violated field so a client can render all errors at
// once.
package inputval

import (
	"regexp"
	"strings"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
)

// emailRe matches the permissive address shape accepted on registration
// forms. Full RFC validation is deliberately not attempted.
var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// Validator accumulates field errors for one request.
type Validator struct {
	errs []httpapi.FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Add records a violation for a field.
func (v *Validator) Add(field, message string) {
	v.errs = append(v.errs, httpapi.FieldError{Field: field, Message: message})
}

// Require records a violation when value is empty after trimming.
func (v *Validator) Require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, message)
	}
}

// MaxLen records a violation when value exceeds max characters.
// Empty values pass; pair with Require when the field is mandatory.
func (v *Validator) MaxLen(field, value string, max int, message string) {
	if len(value) > max {
		v.Add(field, message)
	}
}

// MinLen records a violation when value is shorter than min characters.
func (v *Validator) MinLen(field, value string, min int, message string) {
	if len(value) < min {
		v.Add(field, message)
	}
}

// IntRange records a violation when n is outside [lo, hi].
func (v *Validator) IntRange(field string, n, lo, hi int, message string) {
	if n < lo || n > hi {
		v.Add(field, message)
	}
}

// OneOf records a violation when value is not in the allowed list.
func (v *Validator) OneOf(field, value string, allowed []string, message string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Add(field, message)
}

// Email records a violation when a non-empty value does not look like an
// email address. Empty values pass (the field is optional).
func (v *Validator) Email(field, value, message string) {
	if value == "" {
		return
	}
	if !emailRe.MatchString(value) {
		v.Add(field, message)
	}
}

// OK reports whether no violations were recorded.
func (v *Validator) OK() bool {
	return len(v.errs) == 0
}

// Errors returns the recorded violations in the order they were added.
func (v *Validator) Errors() []httpapi.FieldError {
	return v.errs
}
