package wagon

import (
	"context"
	"io"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// INTERFACES

// Backend is the remote storage used by a transport. All resource names
// are relative to the repository base directory.
type Backend interface {
	// Connect to the repository
	ConnectToRepository(context.Context, schema.ConnectRequest) error

	// Disconnect from the repository
	DisconnectFromRepository(context.Context) error

	// Return true if the named resource exists
	DoesRemoteResourceExist(context.Context, string) (bool, error)

	// Download a resource to a local file, notifying progress
	GetResource(ctx context.Context, name, destination string, progress Progress) error

	// Return true if the remote resource was modified after the timestamp
	IsRemoteResourceNewer(ctx context.Context, name string, timestamp time.Time) (bool, error)

	// Return the names of the entries in a directory
	ListDirectory(ctx context.Context, directory string) ([]string, error)

	// Upload a local file to a resource, notifying progress
	PutResource(ctx context.Context, source, destination string, progress Progress) error
}

// SessionListener receives session lifecycle events
type SessionListener interface {
	SessionEvent(schema.SessionEvent)
}

// TransferListener receives transfer lifecycle events
type TransferListener interface {
	TransferEvent(schema.TransferEvent)
}

// Progress is notified with the bytes moved by each read or write
type Progress interface {
	Notify([]byte)
}

// Store is the object storage used by the S3 backend. Keys are absolute
// within the bucket. Errors carry the ErrResourceMissing kind when the
// object or bucket does not exist, ErrAuthorization when access is denied,
// and ErrTransferFailed otherwise.
type Store interface {
	// Return the metadata for an object
	Head(ctx context.Context, key string) (*schema.ObjectInfo, error)

	// Return the content of an object, which should be closed by the caller
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Return one page of keys and common prefixes. An empty token returns
	// the first page.
	List(ctx context.Context, prefix, delimiter, token string) (*schema.ObjectList, error)

	// Write an object, reading the body once
	Put(ctx context.Context, req schema.PutObjectRequest, body io.Reader) error

	// Release any resources
	Close() error
}
