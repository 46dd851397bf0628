package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/wlkit/wlkit"
)

// Kind categorizes the error
type Kind string

const (
	// KindAlreadyDropped means the native object behind a handle no longer
	// exists. Callers are expected to treat this as "the device or output
	// is gone" and skip the action.
	KindAlreadyDropped Kind = "already_dropped"

	// KindAlreadyBorrowed means the resource is already checked out by an
	// enclosing run. This indicates a logic bug in the caller, not a
	// transient condition to retry.
	KindAlreadyBorrowed Kind = "already_borrowed"

	// KindClosed means the backend has been shut down and no longer
	// accepts operations.
	KindClosed Kind = "closed"

	// KindUnknownObject means an event or operation referenced a native
	// identity the backend has no record of.
	KindUnknownObject Kind = "unknown_object"

	// KindInvalidData means configuration or scenario input could not be
	// parsed or failed validation.
	KindInvalidData Kind = "invalid_data"
)

// Error is the structured error type used throughout the toolkit
type Error struct {
	Cause    error
	Kind     Kind
	Resource string // resource kind, e.g. "output", "tablet-pad"
	ID       wlkit.NativeID
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')

	if e.Resource != "" {
		b.WriteByte(' ')
		b.WriteString(e.Resource)
	}
	if e.ID != 0 {
		b.WriteByte(' ')
		b.WriteString(e.ID.String())
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match on Kind
// alone, so sentinels like AlreadyDropped("", 0) work with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// AlreadyDropped creates an already-dropped error for a resource
func AlreadyDropped(resource string, id wlkit.NativeID) *Error {
	return &Error{
		Kind:     KindAlreadyDropped,
		Resource: resource,
		ID:       id,
	}
}

// AlreadyBorrowed creates an already-borrowed error for a resource
func AlreadyBorrowed(resource string, id wlkit.NativeID) *Error {
	return &Error{
		Kind:     KindAlreadyBorrowed,
		Resource: resource,
		ID:       id,
	}
}

// Closed creates a backend-closed error
func Closed(detail string) *Error {
	return &Error{
		Kind:   KindClosed,
		Detail: detail,
	}
}

// UnknownObject creates an unknown-object error
func UnknownObject(id wlkit.NativeID) *Error {
	return &Error{
		Kind:   KindUnknownObject,
		ID:     id,
		Detail: "no such native object",
	}
}

// InvalidData creates an invalid data error
func InvalidData(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Wrap wraps an existing error with a kind and additional context
func Wrap(kind Kind, cause error, detail string) *Error {
	return &Error{
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsAlreadyDropped reports whether err is, or wraps, an already-dropped error
func IsAlreadyDropped(err error) bool {
	return hasKind(err, KindAlreadyDropped)
}

// IsAlreadyBorrowed reports whether err is, or wraps, an already-borrowed error
func IsAlreadyBorrowed(err error) bool {
	return hasKind(err, KindAlreadyBorrowed)
}

func hasKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
