package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	blob "gocloud.dev/blob"
	fileblob "gocloud.dev/blob/fileblob"
	memblob "gocloud.dev/blob/memblob"
	gcerrors "gocloud.dev/gcerrors"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Store is an object store over a Go CDK bucket
type Store struct {
	bucket *blob.Bucket
	shared bool // bucket is shared and is not closed with the store
	file   bool // directories are implicit, so markers are not written
}

var _ wagon.Store = (*Store)(nil)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Number of keys requested per listing page
	pageSize = 1000
)

var (
	memLock    sync.Mutex
	memBuckets = make(map[string]*blob.Bucket)
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a store over an open bucket. The bucket is closed with the store.
func New(bucket *blob.Bucket) *Store {
	return &Store{bucket: bucket}
}

// Open returns a store for a Go CDK URL, for example "mem://" or
// "file:///path/to/dir"
func Open(ctx context.Context, url string) (*Store, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}
	return &Store{bucket: bucket, file: strings.HasPrefix(url, fileblob.Scheme+"://")}, nil
}

// OpenMem returns a store over a named in-memory bucket. Stores opened with
// the same name share their contents for the life of the process.
func OpenMem(name string) *Store {
	memLock.Lock()
	defer memLock.Unlock()
	bucket, exists := memBuckets[name]
	if !exists {
		bucket = memblob.OpenBucket(nil)
		memBuckets[name] = bucket
	}
	return &Store{bucket: bucket, shared: true}
}

// OpenFile returns a store rooted at a local directory, which is created
// if it does not exist
func OpenFile(dir string) (*Store, error) {
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}
	return &Store{bucket: bucket, file: true}, nil
}

// Close the store
func (s *Store) Close() error {
	var result error
	if s.bucket != nil && !s.shared {
		result = errors.Join(result, s.bucket.Close())
	}
	s.bucket = nil

	// Return any errors
	return result
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Store) isOpen() error {
	if s.bucket == nil {
		return wagon.NewError(wagon.ErrTransferFailed, "", "", errors.New("store is closed"))
	}
	return nil
}

func isMarker(key string) bool {
	return strings.HasSuffix(key, schema.DirectoryDelimiter)
}

// blobErr wraps a Go CDK error with the matching error kind
func blobErr(err error, op, key string) error {
	if err == nil {
		return nil
	}
	// Check for OS-level errors before Go CDK classification, since the
	// gcerrors default path wraps with %v and breaks the chain.
	if errors.Is(err, syscall.EISDIR) || errors.Is(err, syscall.EEXIST) {
		return wagon.Errorf(wagon.ErrTransferFailed, op, key, "cannot overwrite directory with file")
	}
	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return wagon.NewError(wagon.ErrResourceMissing, op, key, err)
	case gcerrors.PermissionDenied:
		return wagon.NewError(wagon.ErrAuthorization, op, key, err)
	default:
		return wagon.NewError(wagon.ErrTransferFailed, op, key, err)
	}
}
