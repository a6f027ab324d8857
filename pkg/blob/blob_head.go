package blob

import (
	"context"
	"io"

	// Packages
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Head returns the metadata for an object
func (s *Store) Head(ctx context.Context, key string) (*schema.ObjectInfo, error) {
	if err := s.isOpen(); err != nil {
		return nil, err
	}
	attrs, err := s.bucket.Attributes(ctx, key)
	if err != nil {
		return nil, blobErr(err, "head", key)
	}

	// Return the metadata
	info := &schema.ObjectInfo{
		Key:         key,
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		ETag:        attrs.ETag,
	}
	if !attrs.ModTime.IsZero() {
		modtime := attrs.ModTime
		info.LastModified = &modtime
	}
	return info, nil
}

// Get returns the content of an object
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := s.isOpen(); err != nil {
		return nil, err
	}
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, blobErr(err, "get", key)
	}
	return r, nil
}
