package scapdb

import (
	"errors"
	"strings"
)

// Error is the scapdb error domain type.
//
// Errors returned by scapdb packages should be able to be inspected as
// ([errors.As]) an *Error somewhere in the chain.
//
// An Error is created at the system boundary (reading the scan root, decoding
// a datastream) and intermediate layers add context with [fmt.Errorf] and the
// "%w" verb instead of nesting another Error.
type Error struct {
	Inner   error
	Kind    ErrorKind
	Message string
	Op      string
	// Path is the filesystem path the error concerns, if any.
	Path string
}

var (
	_ error                       = (*Error)(nil)
	_ interface{ Is(error) bool } = (*Error)(nil)
	_ interface{ Unwrap() error } = (*Error)(nil)
)

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(" ")
	}
	b.WriteString("[")
	switch e.Kind {
	case ErrInternal,
		ErrInvalid,
		ErrPrecondition:
		b.WriteString(string(e.Kind))
	default:
		b.WriteString("???")
	}
	b.WriteString("]: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		if e.Message != "" || e.Inner != nil {
			b.WriteString(": ")
		}
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	}
	if e.Message != "" && e.Inner != nil {
		b.WriteString(": ")
	}
	if e.Op == "" && e.Message == "" && e.Path == "" {
		b.Reset()
	}
	if e.Inner != nil {
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

// Is enables [errors.Is].
//
// Callers should compare against a declared [ErrorKind].
func (e *Error) Is(kind error) bool {
	return errors.Is(e.Kind, kind)
}

// Unwrap enables [errors.Unwrap].
func (e *Error) Unwrap() error {
	return e.Inner
}

// ErrorKind represents classes of errors to be checked against.
//
// If unsure which kind to use, use ErrInternal.
type ErrorKind string

// Defined error kinds.
var (
	ErrInternal     = ErrorKind("internal")     // non-specific internal error
	ErrInvalid      = ErrorKind("invalid")      // malformed input, e.g. bad XML
	ErrPrecondition = ErrorKind("precondition") // e.g. scan root missing or unreadable
)

// Error implements error.
func (e ErrorKind) Error() string {
	return string(e)
}
