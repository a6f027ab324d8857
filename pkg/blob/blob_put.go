package blob

import (
	"context"
	"errors"
	"io"

	// Packages
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	blob "gocloud.dev/blob"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Put writes an object. Canned ACLs have no equivalent in a Go CDK bucket
// and are ignored. On a file system directories exist implicitly, so
// directory markers are not written.
func (s *Store) Put(ctx context.Context, req schema.PutObjectRequest, body io.Reader) error {
	if err := s.isOpen(); err != nil {
		return err
	} else if s.file && isMarker(req.Key) {
		return nil
	}

	// Write the object
	w, err := s.bucket.NewWriter(ctx, req.Key, &blob.WriterOptions{
		ContentType: req.ContentType,
	})
	if err != nil {
		return blobErr(err, "put", req.Key)
	}
	if body != nil {
		if _, err := io.Copy(w, body); err != nil {
			return blobErr(errors.Join(err, w.Close()), "put", req.Key)
		}
	}
	if err := w.Close(); err != nil {
		return blobErr(err, "put", req.Key)
	}

	// Return success
	return nil
}
