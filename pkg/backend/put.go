package backend

import (
	"context"
	"os"
	"strings"

	// Packages
	mimetype "github.com/gabriel-vasile/mimetype"
	wagon "github.com/mutablelogic/go-s3wagon"
	progress "github.com/mutablelogic/go-s3wagon/pkg/progress"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// PutResource uploads a local file to the object for a resource. Marker
// objects are written first for every directory between the base directory
// and the resource, most specific first. The file is read through the
// progress as the store consumes it.
func (b *Backend) PutResource(ctx context.Context, source, destination string, p wagon.Progress) error {
	store, err := b.connected("put", destination)
	if err != nil {
		return err
	}

	// Write directory markers
	for _, dir := range parentDirs(destination) {
		if err := store.Put(ctx, schema.PutObjectRequest{
			Key:         b.key(dir),
			ContentType: schema.DirectoryContentType,
			ACL:         schema.ACLPublicRead,
		}, nil); err != nil {
			return transferFailed("put", dir, err)
		}
	}

	// Open the source
	f, err := os.Open(source)
	if err != nil {
		return wagon.NewError(wagon.ErrTransferFailed, "put", destination, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return wagon.NewError(wagon.ErrTransferFailed, "put", destination, err)
	} else if !info.Mode().IsRegular() {
		return wagon.Errorf(wagon.ErrTransferFailed, "put", destination, "%q is not a regular file", source)
	}
	mime, err := mimetype.DetectFile(source)
	if err != nil {
		return wagon.NewError(wagon.ErrTransferFailed, "put", destination, err)
	}

	// Write the object
	if err := store.Put(ctx, schema.PutObjectRequest{
		Key:           b.key(destination),
		ContentLength: info.Size(),
		ContentType:   mime.String(),
		ACL:           schema.ACLPublicRead,
	}, progress.NewReader(f, p)); err != nil {
		return transferFailed("put", destination, err)
	}

	// Return success
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// parentDirs returns the directories containing a resource, each ending
// with "/", from the immediate parent up to the top level
func parentDirs(name string) []string {
	var result []string
	for {
		i := strings.LastIndex(name, schema.DirectoryDelimiter)
		if i <= 0 {
			return result
		}
		name = name[:i]
		result = append(result, name+schema.DirectoryDelimiter)
	}
}

// transferFailed returns store errors as transfer failures, keeping the
// original kind in the chain
func transferFailed(op, name string, err error) error {
	if wagon.KindOf(err) == wagon.ErrTransferFailed {
		return err
	}
	return wagon.NewError(wagon.ErrTransferFailed, op, name, err)
}
