package schema

import (
	"errors"
	"fmt"
)

// Error categories. Compile and validation failures wrap one of these, so
// callers can classify with errors.Is regardless of the wrapped detail.
var (
	// ErrCircularReference reports a grouping or typedef that contains
	// itself, directly or through a chain.
	ErrCircularReference = errors.New("circular reference")

	// ErrCardinality reports a missing required substatement or too many
	// occurrences of an optional one.
	ErrCardinality = errors.New("cardinality violation")

	// ErrUnsupportedStatement reports a substatement the enclosing
	// statement does not declare as legal.
	ErrUnsupportedStatement = errors.New("unsupported statement")

	// ErrDuplicateDescriptor reports a substatement table listing the
	// same statement kind twice.
	ErrDuplicateDescriptor = errors.New("duplicate descriptor")

	// ErrInvalidArgument reports a statement argument that cannot be
	// interpreted (e.g. a config value other than true/false).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownExtension reports an extension use with no registered
	// plugin and no matching extension definition.
	ErrUnknownExtension = errors.New("unknown extension")

	// ErrUnresolvedTarget reports a deferred leafref, expression, or
	// default value that could not be resolved after the drain pass.
	ErrUnresolvedTarget = errors.New("unresolved target")

	// ErrInvalidExtensionData reports a plugin compile failure.
	ErrInvalidExtensionData = errors.New("invalid extension data")

	// ErrValidation reports a plugin validation failure for one data
	// instance.
	ErrValidation = errors.New("validation error")

	// ErrVersionMismatch reports a plugin built against an incompatible
	// extensions API version.
	ErrVersionMismatch = errors.New("plugin API version mismatch")

	// ErrContextFreed reports use of a library context after Free.
	ErrContextFreed = errors.New("context already freed")
)

// CompileError is a structural compilation failure. It carries the schema
// path rendered at the point of failure.
type CompileError struct {
	Code string // diagnostic code, e.g. "circular-grouping"
	Path string // rendered schema path
	Err  error  // wraps one of the category sentinels
}

func (e *CompileError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// compileErrorf builds a CompileError wrapping the given category sentinel.
func compileErrorf(code, path string, category error, format string, args ...any) *CompileError {
	detail := fmt.Sprintf(format, args...)
	return &CompileError{
		Code: code,
		Path: path,
		Err:  fmt.Errorf("%w: %s", category, detail),
	}
}
