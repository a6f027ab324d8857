package transport

import (
	"context"
	"errors"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	wagon "github.com/mutablelogic/go-s3wagon"
	listener "github.com/mutablelogic/go-s3wagon/pkg/listener"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Transport moves resources to and from a repository through a backend,
// firing session and transfer events to registered listeners. A transport
// is not safe for concurrent use.
type Transport struct {
	opts
	id         string
	backend    wagon.Backend
	sessions   *listener.Sessions
	transfers  *listener.Transfers
	repository *schema.Repository
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new transport over a backend
func New(backend wagon.Backend, opts ...Opt) (*Transport, error) {
	self := new(Transport)
	if backend == nil {
		return nil, errors.New("missing backend")
	}

	// Apply options
	if opt, err := applyOpts(opts); err != nil {
		return nil, err
	} else {
		self.opts = opt
	}

	// Set the identity, which is the source of all events
	self.id = uuid.NewString()
	self.backend = backend
	self.sessions = listener.NewSessions(self.id)
	self.transfers = listener.NewTransfers(self.id)
	self.logger = self.logger.With().Str("transport", self.id).Logger()

	// Return success
	return self, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ID returns the identity of the transport, which is the source of events
func (t *Transport) ID() string {
	return t.id
}

// Repository returns the repository passed to the last Connect call
func (t *Transport) Repository() *schema.Repository {
	return t.repository
}

func (t *Transport) Interactive() bool {
	return t.interactive
}

func (t *Transport) SetInteractive(interactive bool) {
	t.interactive = interactive
}

// Timeout returns the connect timeout
func (t *Transport) Timeout() time.Duration {
	return t.timeout
}

// SetTimeout sets the connect timeout, which is used on the next Connect
func (t *Transport) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
}

// ReadTimeout returns the read timeout
func (t *Transport) ReadTimeout() time.Duration {
	return t.readTimeout
}

// SetReadTimeout sets the read timeout, which is used on the next Connect
func (t *Transport) SetReadTimeout(timeout time.Duration) {
	t.readTimeout = timeout
}

// SupportsDirectoryCopy returns true if PutDirectory is supported
func (t *Transport) SupportsDirectoryCopy() bool {
	return t.directoryCopy
}

// OpenConnection does nothing, as the connection is opened by Connect
func (t *Transport) OpenConnection(context.Context) error {
	return nil
}

func (t *Transport) AddSessionListener(l wagon.SessionListener) {
	t.sessions.Add(l)
}

func (t *Transport) RemoveSessionListener(l wagon.SessionListener) {
	t.sessions.Remove(l)
}

func (t *Transport) HasSessionListener(l wagon.SessionListener) bool {
	return t.sessions.Has(l)
}

func (t *Transport) AddTransferListener(l wagon.TransferListener) {
	t.transfers.Add(l)
}

func (t *Transport) RemoveTransferListener(l wagon.TransferListener) {
	t.transfers.Remove(l)
}

func (t *Transport) HasTransferListener(l wagon.TransferListener) bool {
	return t.transfers.Has(l)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func spanTransportName(op string) string {
	return schema.SchemaName + ".transport." + op
}
