package backend

import (
	"context"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	aws "github.com/mutablelogic/go-s3wagon/pkg/aws"
	blob "github.com/mutablelogic/go-s3wagon/pkg/blob"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Backend maps repository resources onto object keys. A resource name is
// appended to the base directory of the repository to form the key, and
// directories are represented by zero-length marker objects whose keys
// end with "/".
type Backend struct {
	opt
	store   wagon.Store
	bucket  string
	baseDir string
}

var _ wagon.Backend = (*Backend)(nil)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a backend which is not yet connected
func New(opts ...Opt) (*Backend, error) {
	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	return &Backend{opt: *o}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ConnectToRepository opens the object store for the repository. When
// authentication is supplied, both the access key (user name) and the
// secret key (passphrase) are required. Without authentication the
// default credential chain is used.
func (b *Backend) ConnectToRepository(ctx context.Context, req schema.ConnectRequest) error {
	repo := req.Repository
	if repo == nil || repo.URL == nil {
		return wagon.Errorf(wagon.ErrConnection, "connect", "", "missing repository")
	}
	if auth := req.Auth; auth != nil {
		if auth.UserName == "" {
			return wagon.Errorf(wagon.ErrAuthentication, "connect", repo.URL.Redacted(), "missing access key")
		} else if auth.Passphrase == "" {
			return wagon.Errorf(wagon.ErrAuthentication, "connect", repo.URL.Redacted(), "missing secret key")
		}
	}

	// Close any existing store
	if err := b.closeStore(); err != nil {
		return wagon.NewError(wagon.ErrConnection, "connect", repo.URL.Redacted(), err)
	}

	// Open the store
	store, err := b.open(ctx, req)
	if err != nil {
		if kind := wagon.KindOf(err); kind == wagon.ErrConnection || kind == wagon.ErrAuthentication {
			return err
		}
		return wagon.NewError(wagon.ErrConnection, "connect", repo.URL.Redacted(), err)
	}

	// Set the key space
	b.store = store
	b.bucket = repo.Bucket()
	if repo.Scheme() == schema.SchemeFile {
		b.baseDir = ""
	} else {
		b.baseDir = repo.BaseDir()
	}

	// Return success
	return nil
}

// DisconnectFromRepository closes the object store
func (b *Backend) DisconnectFromRepository(ctx context.Context) error {
	if err := b.closeStore(); err != nil {
		return wagon.NewError(wagon.ErrConnection, "disconnect", b.bucket, err)
	}
	return nil
}

// BaseDir returns the base directory within the bucket, which is empty or
// ends with "/"
func (b *Backend) BaseDir() string {
	return b.baseDir
}

// Bucket returns the bucket name
func (b *Backend) Bucket() string {
	return b.bucket
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (b *Backend) open(ctx context.Context, req schema.ConnectRequest) (wagon.Store, error) {
	switch {
	case b.opt.store != nil:
		return b.opt.store, nil
	case b.factory != nil:
		return b.factory(ctx, req)
	}

	repo := req.Repository
	switch repo.Scheme() {
	case schema.SchemeS3:
		opts := []aws.Opt{
			aws.WithRegion(repo.Region()),
			aws.WithEndpoint(repo.Endpoint()),
			aws.WithProxy(req.ProxyFor(schema.ProtocolHTTP)),
			aws.WithTimeout(req.Timeout),
			aws.WithReadTimeout(req.ReadTimeout),
			aws.WithTracerProvider(b.tracerProvider),
		}
		if req.Auth != nil {
			opts = append(opts, aws.WithCredentials(req.Auth.UserName, req.Auth.Passphrase))
		}
		return aws.New(ctx, repo.Bucket(), opts...)
	case schema.SchemeMem:
		return blob.OpenMem(repo.Bucket()), nil
	case schema.SchemeFile:
		return blob.OpenFile(repo.URL.Path)
	default:
		return nil, wagon.Errorf(wagon.ErrConnection, "connect", repo.URL.Redacted(), "unsupported scheme %q", repo.Scheme())
	}
}

// closeStore closes the store unless it is owned by the caller
func (b *Backend) closeStore() error {
	store := b.store
	b.store = nil
	if store == nil || store == b.opt.store {
		return nil
	}
	return store.Close()
}

// connected returns the store, or an error if not connected
func (b *Backend) connected(op, name string) (wagon.Store, error) {
	if b.store == nil {
		return nil, wagon.Errorf(wagon.ErrTransferFailed, op, name, "not connected")
	}
	return b.store, nil
}

// key returns the object key for a resource name
func (b *Backend) key(name string) string {
	return b.baseDir + name
}
