package listener

import (
	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Sessions is the set of session listeners for a transport, and fires
// session events to them. The zero value is ready to use.
type Sessions struct {
	source string
	registry[wagon.SessionListener]
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewSessions returns an empty set of session listeners. Events are
// fired with the given source identity.
func NewSessions(source string) *Sessions {
	return &Sessions{source: source}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Add a listener. Adding a listener twice has no further effect, and
// adding nil is ignored.
func (s *Sessions) Add(l wagon.SessionListener) {
	s.add(l)
}

// Remove a listener. Removing a listener which is not registered is ignored.
func (s *Sessions) Remove(l wagon.SessionListener) {
	s.remove(l)
}

// Has returns true if the listener is registered
func (s *Sessions) Has(l wagon.SessionListener) bool {
	return s.has(l)
}

// Len returns the number of registered listeners
func (s *Sessions) Len() int {
	return s.len()
}

func (s *Sessions) FireSessionOpening() {
	s.fire(schema.SessionOpening, nil)
}

func (s *Sessions) FireSessionOpened() {
	s.fire(schema.SessionOpened, nil)
}

func (s *Sessions) FireSessionDisconnecting() {
	s.fire(schema.SessionDisconnecting, nil)
}

func (s *Sessions) FireSessionDisconnected() {
	s.fire(schema.SessionDisconnected, nil)
}

func (s *Sessions) FireSessionConnectionRefused(err error) {
	s.fire(schema.SessionConnectionRefused, err)
}

func (s *Sessions) FireSessionLoggedIn() {
	s.fire(schema.SessionLoggedIn, nil)
}

func (s *Sessions) FireSessionLoggedOff() {
	s.fire(schema.SessionLoggedOff, nil)
}

func (s *Sessions) FireSessionError(err error) {
	s.fire(schema.SessionError, err)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Sessions) fire(t schema.SessionEventType, err error) {
	event := schema.SessionEvent{
		Source: s.source,
		Type:   t,
		Err:    err,
	}
	for _, l := range s.snapshot() {
		l.SessionEvent(event)
	}
}
