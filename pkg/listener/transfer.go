package listener

import (
	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Transfers is the set of transfer listeners for a transport, and fires
// transfer events to them. The zero value is ready to use.
type Transfers struct {
	source string
	registry[wagon.TransferListener]
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTransfers returns an empty set of transfer listeners. Events are
// fired with the given source identity.
func NewTransfers(source string) *Transfers {
	return &Transfers{source: source}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Add a listener. Adding a listener twice has no further effect, and
// adding nil is ignored.
func (t *Transfers) Add(l wagon.TransferListener) {
	t.add(l)
}

// Remove a listener. Removing a listener which is not registered is ignored.
func (t *Transfers) Remove(l wagon.TransferListener) {
	t.remove(l)
}

// Has returns true if the listener is registered
func (t *Transfers) Has(l wagon.TransferListener) bool {
	return t.has(l)
}

// Len returns the number of registered listeners
func (t *Transfers) Len() int {
	return t.len()
}

func (t *Transfers) FireTransferInitiated(resource schema.Resource, request schema.RequestType) {
	t.fire(schema.TransferEvent{Type: schema.TransferInitiated, Resource: resource, Request: request})
}

func (t *Transfers) FireTransferStarted(resource schema.Resource, request schema.RequestType) {
	t.fire(schema.TransferEvent{Type: schema.TransferStarted, Resource: resource, Request: request})
}

// FireTransferProgress notifies listeners of the bytes moved by a single
// read or write. The data is not copied.
func (t *Transfers) FireTransferProgress(resource schema.Resource, request schema.RequestType, data []byte) {
	t.fire(schema.TransferEvent{Type: schema.TransferProgress, Resource: resource, Request: request, Data: data})
}

func (t *Transfers) FireTransferCompleted(resource schema.Resource, request schema.RequestType) {
	t.fire(schema.TransferEvent{Type: schema.TransferCompleted, Resource: resource, Request: request})
}

func (t *Transfers) FireTransferError(resource schema.Resource, request schema.RequestType, err error) {
	t.fire(schema.TransferEvent{Type: schema.TransferError, Resource: resource, Request: request, Err: err})
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *Transfers) fire(event schema.TransferEvent) {
	event.Source = t.source
	for _, l := range t.snapshot() {
		l.TransferEvent(event)
	}
}
