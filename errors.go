package graphforge

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for introspection failures.
var (
	// ErrNotFound is returned when an introspection source does not
	// resolve to a registered schema.
	ErrNotFound = errors.New("graphforge: schema not found")

	// ErrNotASchema is returned when a registered value does not satisfy
	// the Source capability contract.
	ErrNotASchema = errors.New("graphforge: source is not a schema")
)

// NotFoundError reports an unknown schema identity.
type NotFoundError struct {
	name string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("graphforge: schema %q not found", e.name)
}

// Is reports whether the target matches ErrNotFound.
// This allows errors.Is(err, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Name returns the identity that was looked up.
func (e *NotFoundError) Name() string { return e.name }

// NewNotFoundError returns a new NotFoundError for the given identity.
func NewNotFoundError(name string) *NotFoundError {
	return &NotFoundError{name: name}
}

// NotASchemaError reports a registered value that lacks the Source
// capability contract.
type NotASchemaError struct {
	name    string
	missing []string
}

// Error returns the error string.
func (e *NotASchemaError) Error() string {
	if len(e.missing) == 0 {
		return fmt.Sprintf("graphforge: %q is not a schema", e.name)
	}
	return fmt.Sprintf("graphforge: %q is not a schema (missing %s)", e.name, strings.Join(e.missing, ", "))
}

// Is reports whether the target matches ErrNotASchema.
func (e *NotASchemaError) Is(err error) bool {
	return err == ErrNotASchema
}

// Name returns the identity of the rejected value.
func (e *NotASchemaError) Name() string { return e.name }

// Missing returns the capability names the value failed to provide.
func (e *NotASchemaError) Missing() []string { return e.missing }

// NewNotASchemaError returns a new NotASchemaError for the given identity
// and the missing capabilities.
func NewNotASchemaError(name string, missing ...string) *NotASchemaError {
	return &NotASchemaError{name: name, missing: missing}
}

// IsNotFound reports whether the error chain contains a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsNotASchema reports whether the error chain contains a NotASchemaError.
func IsNotASchema(err error) bool {
	var ns *NotASchemaError
	return errors.As(err, &ns)
}
