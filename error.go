package wagon

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Error is a failure of a transport operation. The Kind is one of the
// error kinds below, and both the kind and the cause can be matched with
// errors.Is and errors.As.
type Error struct {
	Kind     error
	Op       string
	Resource string
	Err      error
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	// ErrConnection is a network or connect-level failure
	ErrConnection = errors.New("connection failed")

	// ErrAuthentication is a missing or invalid credential
	ErrAuthentication = errors.New("authentication failed")

	// ErrTransferFailed is an I/O or service failure during a transfer
	ErrTransferFailed = errors.New("transfer failed")

	// ErrResourceMissing is a remote object or prefix which does not exist
	ErrResourceMissing = errors.New("resource does not exist")

	// ErrAuthorization is a permission denial from the backend
	ErrAuthorization = errors.New("authorization failed")
)

var kinds = []error{
	ErrConnection,
	ErrAuthentication,
	ErrTransferFailed,
	ErrResourceMissing,
	ErrAuthorization,
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewError returns an error of the given kind. The cause may be nil.
func NewError(kind error, op, resource string, err error) error {
	return &Error{Kind: kind, Op: op, Resource: resource, Err: err}
}

// Errorf returns an error of the given kind with a formatted cause
func Errorf(kind error, op, resource, format string, a ...any) error {
	return NewError(kind, op, resource, fmt.Errorf(format, a...))
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Resource != "" {
		msg += fmt.Sprintf(" (%q)", e.Resource)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the error kind carried by err, or nil if the error is
// not one of the transport error kinds. When errors are nested, the kind
// of the outermost Error is returned.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e.Kind != nil {
		return e.Kind
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// IsTyped returns true if err carries one of the transport error kinds
func IsTyped(err error) bool {
	return KindOf(err) != nil
}
