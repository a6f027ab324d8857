package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	progress "github.com/mutablelogic/go-s3wagon/pkg/progress"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetResource downloads the object for a resource to a local file,
// creating parent directories as needed. Each write to the file notifies
// the progress.
func (b *Backend) GetResource(ctx context.Context, name, destination string, p wagon.Progress) error {
	store, err := b.connected("get", name)
	if err != nil {
		return err
	}

	// Open the object
	r, err := store.Get(ctx, b.key(name))
	if err != nil {
		if kind := wagon.KindOf(err); kind == wagon.ErrResourceMissing || kind == wagon.ErrAuthorization {
			return err
		}
		return wagon.NewError(wagon.ErrTransferFailed, "get", name, err)
	}
	defer r.Close()

	// Create the destination
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return wagon.NewError(wagon.ErrTransferFailed, "get", name, err)
	}
	f, err := os.Create(destination)
	if err != nil {
		return wagon.NewError(wagon.ErrTransferFailed, "get", name, err)
	}

	// Copy the content
	w := progress.NewWriter(f, p)
	if _, err := progress.Copy(w, r); err != nil {
		return wagon.NewError(wagon.ErrTransferFailed, "get", name, errors.Join(err, w.Close()))
	}
	if err := w.Close(); err != nil {
		return wagon.NewError(wagon.ErrTransferFailed, "get", name, err)
	}

	// Return success
	return nil
}
