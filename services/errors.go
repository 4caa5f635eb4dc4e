// Package services implements the sales prospect lifecycle and points
// accumulation workflow: prospect state transitions, the append-only
// points ledger with its running accumulation, target resolution and
// the dashboard aggregates. Handlers stay thin; everything that must
// hold under test lives here.
package services

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports malformed or missing input with field-level
// detail. Fields maps a field name to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// AuthorizationError is returned when the acting salesperson does not
// own the resource. It carries no detail on purpose: the response must
// not reveal who the real owner is, or whether the caller guessed a
// live id.
type AuthorizationError struct{}

func (e *AuthorizationError) Error() string {
	return "forbidden"
}

// NotFoundError reports an absent referenced record.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}
