// Package errors provides sentinel errors and structured error details for boom.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a user-supplied value failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a template, project, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrInvalidManifest indicates a template manifest failed field validation.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrInvalidTarget indicates the target root is not creatable or not a directory.
	ErrInvalidTarget = errors.New("invalid target path")

	// ErrRender indicates substitution failed on a file's content or name.
	ErrRender = errors.New("render error")

	// ErrWouldOverwrite indicates the target root is not empty and clearing it was not confirmed.
	ErrWouldOverwrite = errors.New("target would be overwritten")

	// ErrMarkerNotFound indicates an injection anchor is absent from the target file.
	ErrMarkerNotFound = errors.New("marker not found")

	// ErrUnsupported indicates the selected template kind does not support the operation.
	ErrUnsupported = errors.New("unsupported operation")
)

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory path involved (optional).
	Location string

	// Field is the field name for manifest or context errors (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewInvalidManifestError creates an error for a manifest that failed validation.
func NewInvalidManifestError(location string, cause error) error {
	return &DetailError{
		Type:     "invalid manifest",
		Message:  cause.Error(),
		Location: location,
		Cause:    errors.Join(ErrInvalidManifest, cause),
	}
}

// NewInvalidTargetError creates an error for a target root that cannot be used.
func NewInvalidTargetError(message, location string, cause error) error {
	err := ErrInvalidTarget
	if cause != nil {
		err = errors.Join(ErrInvalidTarget, cause)
	}
	return &DetailError{
		Type:     "invalid target path",
		Message:  message,
		Location: location,
		Hint:     "Check that the path is a directory and that you have write permission.",
		Cause:    err,
	}
}

// NewRenderError creates an error for a file whose name or content failed substitution.
func NewRenderError(location string, cause error) error {
	return &DetailError{
		Type:     "render failed",
		Message:  cause.Error(),
		Location: location,
		Hint:     "Check the placeholder syntax in the template file.",
		Cause:    errors.Join(ErrRender, cause),
	}
}

// NewWouldOverwriteError creates an error for an unconfirmed non-empty target.
func NewWouldOverwriteError(location string) error {
	return &DetailError{
		Type:     "target not empty",
		Message:  "the target directory is not empty and its contents would be deleted",
		Location: location,
		Hint:     "Re-run with --force to clear the directory, or choose another target.",
		Cause:    ErrWouldOverwrite,
	}
}

// NewMarkerNotFoundError creates an error for a registration line that must
// be added by hand because its marker is missing from the file.
func NewMarkerNotFoundError(location, marker, line string) error {
	return &DetailError{
		Type:     "marker not found",
		Message:  fmt.Sprintf("marker %q not found", marker),
		Location: location,
		Context:  map[string]string{"line": line},
		Hint:     "Add the line by hand, or restore the marker comment and re-run with --force.",
		Cause:    ErrMarkerNotFound,
	}
}

// NewUnsupportedError creates an error for an operation the template kind cannot perform.
func NewUnsupportedError(message, hint string) error {
	return &DetailError{
		Type:    "unsupported",
		Message: message,
		Hint:    hint,
		Cause:   ErrUnsupported,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
