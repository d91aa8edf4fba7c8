package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound marks an absent entity. It is an expected outcome, surfaced as
// a 404 and never logged as an error.
var ErrNotFound = errors.New("entity not found")

// ErrNonExistingRelationship marks a reference to an owner that does not
// exist, e.g. creating an Auto against a missing Persona.
var ErrNonExistingRelationship = errors.New("referenced owner does not exist")

// FieldErrors maps a wire-level field name to a human-readable message.
type FieldErrors map[string]string

// InvalidData is the validation failure value. It travels as an error but is
// produced and consumed as data; the delivery layer turns it into a 400 with
// Fields as the response body.
type InvalidData struct {
	Fields FieldErrors
}

func (e *InvalidData) Error() string {
	if len(e.Fields) == 0 {
		return "invalid data"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid data: " + strings.Join(parts, "; ")
}
