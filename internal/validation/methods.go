package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator collects field-level validation errors.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string field is non-empty.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Range checks a numeric bound.
func (v *Validator) Range(field string, value, min, max float64) {
	v.Check(value >= min && value <= max, field,
		fmt.Sprintf("must be between %v and %v", min, max))
}

// Matches checks a value against a pattern.
func (v *Validator) Matches(field, value string, pattern *regexp.Regexp, message string) {
	v.Check(pattern.MatchString(value), field, message)
}

// First returns one error message for toast-style surfacing.
func (v *Validator) First() string {
	for field, msg := range v.Errors {
		return field + " " + msg
	}
	return ""
}
