package errors

import (
	"fmt"
	"sort"
	"strings"
)

// MetaValidationErrors is the meta key holding per-field problems as
// map[string][]string
const MetaValidationErrors = "validation_errors"

// ValidationBuilder collects field problems and turns them into a single
// InvalidArgument error
type ValidationBuilder struct {
	fields map[string][]string
}

// NewValidationBuilder creates an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field records a problem with a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// RequiredField records a missing field
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// Build returns nil when nothing was recorded. Otherwise the message lists
// fields in name order and the meta carries them all.
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(vb.fields))
	for name := range vb.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + strings.Join(vb.fields[name], ", ")
	}

	return InvalidArgumentf("validation failed: %s", strings.Join(parts, "; ")).
		WithMeta(MetaValidationErrors, vb.fields)
}

// ValidateNonNegative rejects values below zero. NaN is rejected too.
func ValidateNonNegative(field string, value float64, vb *ValidationBuilder) {
	if !(value >= 0) {
		vb.Field(field, "must not be negative")
	}
}

// ValidatePositive rejects values that are not above zero
func ValidatePositive(field string, value float64, vb *ValidationBuilder) {
	if !(value > 0) {
		vb.Field(field, "must be positive")
	}
}

// ValidateEnum rejects values outside allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	vb.Field(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}
