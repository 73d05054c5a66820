// Package gen computes generation plans from schema descriptors and
// orchestrates rendering and merging of the generated artifacts.
package gen

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrConflictingFilter indicates a request carrying both an only and
	// a non-empty except filter.
	ErrConflictingFilter = errors.New("graphforge: only and except are mutually exclusive")

	// ErrRenderFailed indicates a template rendering failure.
	ErrRenderFailed = errors.New("graphforge: render failed")
)

// ConflictingFilterError reports a request that supplied both only and a
// non-empty except set. It is raised before any field is processed and is
// fully recoverable by correcting the request.
type ConflictingFilterError struct {
	Target string
}

// Error implements the error interface.
func (e *ConflictingFilterError) Error() string {
	return fmt.Sprintf("graphforge: request %q sets both only and except", e.Target)
}

// Is reports whether the target matches the sentinel for this error.
func (e *ConflictingFilterError) Is(target error) bool {
	return target == ErrConflictingFilter
}

// RenderError reports an opaque failure from the renderer, carrying the
// template name for the diagnostic.
type RenderError struct {
	Template string
	Cause    error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("graphforge: render %q: %v", e.Template, e.Cause)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the sentinel for this error.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailed
}

// ArtifactError reports a failure on one artifact, carrying enough
// context for the invoker to act manually.
type ArtifactError struct {
	Path    string
	Op      string // "create", "append", "link"
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ArtifactError) Error() string {
	msg := fmt.Sprintf("graphforge: %s %s", e.Op, e.Path)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ArtifactError) Unwrap() error { return e.Cause }

// IsConflictingFilter reports whether the error chain contains a
// ConflictingFilterError.
func IsConflictingFilter(err error) bool {
	var cf *ConflictingFilterError
	return errors.As(err, &cf)
}

// IsRenderError reports whether the error chain contains a RenderError.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}
