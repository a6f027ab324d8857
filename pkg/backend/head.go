package backend

import (
	"context"
	"time"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DoesRemoteResourceExist returns true if the object for the resource
// exists. Any store error, including not found, returns false. Only
// cancellation of the context is returned as an error.
func (b *Backend) DoesRemoteResourceExist(ctx context.Context, name string) (bool, error) {
	store, err := b.connected("exists", name)
	if err != nil {
		return false, err
	}
	if _, err := store.Head(ctx, b.key(name)); err != nil {
		if ctx.Err() != nil {
			return false, wagon.NewError(wagon.ErrTransferFailed, "exists", name, ctx.Err())
		}
		return false, nil
	}

	// Return success
	return true, nil
}

// IsRemoteResourceNewer returns true if the object was modified after the
// timestamp, or if the store does not report a modification time.
func (b *Backend) IsRemoteResourceNewer(ctx context.Context, name string, timestamp time.Time) (bool, error) {
	store, err := b.connected("newer", name)
	if err != nil {
		return false, err
	}
	info, err := store.Head(ctx, b.key(name))
	if err != nil {
		if kind := wagon.KindOf(err); kind == wagon.ErrResourceMissing || kind == wagon.ErrAuthorization {
			return false, err
		}
		return false, wagon.NewError(wagon.ErrResourceMissing, "newer", name, err)
	}
	if info == nil || info.LastModified == nil {
		return true, nil
	}

	// Return success
	return info.LastModified.After(timestamp), nil
}
