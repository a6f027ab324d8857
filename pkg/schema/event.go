package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// SessionEventType is the kind of a session lifecycle event
type SessionEventType uint

// TransferEventType is the kind of a transfer lifecycle event
type TransferEventType uint

// SessionEvent is fired to session listeners on connect and disconnect.
type SessionEvent struct {
	// Source identifies the transport which fired the event
	Source string `json:"source"`

	// Type is the kind of event
	Type SessionEventType `json:"type"`

	// Err is set for SessionConnectionRefused and SessionError events
	Err error `json:"error,omitempty"`
}

// TransferEvent is fired to transfer listeners for each stage of a get or
// put, and for failed listings and existence checks.
type TransferEvent struct {
	// Source identifies the transport which fired the event
	Source string `json:"source"`

	// Type is the kind of event
	Type TransferEventType `json:"type"`

	// Resource is the resource being transferred
	Resource Resource `json:"resource"`

	// Request is GET or PUT
	Request RequestType `json:"request"`

	// Data holds the bytes moved by a single read or write, for
	// TransferProgress events. It is only valid during the callback and
	// must not be retained or modified.
	Data []byte `json:"-"`

	// Err is set for TransferError events
	Err error `json:"error,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	SessionOpening SessionEventType = iota
	SessionOpened
	SessionDisconnecting
	SessionDisconnected
	SessionConnectionRefused
	SessionLoggedIn
	SessionLoggedOff
	SessionError
)

const (
	TransferInitiated TransferEventType = iota
	TransferStarted
	TransferProgress
	TransferCompleted
	TransferError
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Length returns the number of bytes carried by a progress event
func (e TransferEvent) Length() int {
	return len(e.Data)
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (e SessionEvent) String() string {
	return types.Stringify(e)
}

func (e TransferEvent) String() string {
	return types.Stringify(e)
}

func (t SessionEventType) String() string {
	switch t {
	case SessionOpening:
		return "OPENING"
	case SessionOpened:
		return "OPENED"
	case SessionDisconnecting:
		return "DISCONNECTING"
	case SessionDisconnected:
		return "DISCONNECTED"
	case SessionConnectionRefused:
		return "CONNECTION_REFUSED"
	case SessionLoggedIn:
		return "LOGGED_IN"
	case SessionLoggedOff:
		return "LOGGED_OFF"
	case SessionError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (t SessionEventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t TransferEventType) String() string {
	switch t {
	case TransferInitiated:
		return "INITIATED"
	case TransferStarted:
		return "STARTED"
	case TransferProgress:
		return "PROGRESS"
	case TransferCompleted:
		return "COMPLETED"
	case TransferError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (t TransferEventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
