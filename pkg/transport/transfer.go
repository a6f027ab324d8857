package transport

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	wagon "github.com/mutablelogic/go-s3wagon"
	progress "github.com/mutablelogic/go-s3wagon/pkg/progress"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get downloads a resource to a local file
func (t *Transport) Get(ctx context.Context, name, destination string) (result error) {
	// OTEL span
	child, endFunc := otel.StartSpan(t.tracer, ctx, spanTransportName("Get"))
	defer func() { endFunc(result) }()

	resource := schema.NewResource(name)
	t.transfers.FireTransferInitiated(resource, schema.RequestGet)
	t.transfers.FireTransferStarted(resource, schema.RequestGet)
	if err := t.backend.GetResource(child, name, destination, progress.New(resource, schema.RequestGet, t.transfers)); err != nil {
		return t.transferError(resource, schema.RequestGet, "get", err)
	}
	t.transfers.FireTransferCompleted(resource, schema.RequestGet)
	t.logger.Debug().Str("resource", name).Str("destination", destination).Msg("get completed")

	// Return success
	return nil
}

// GetIfNewer downloads a resource when the remote copy was modified after
// the timestamp, and returns true if the resource was downloaded. No
// transfer events are fired when the remote copy is not newer.
func (t *Transport) GetIfNewer(ctx context.Context, name, destination string, timestamp time.Time) (_ bool, result error) {
	// OTEL span
	child, endFunc := otel.StartSpan(t.tracer, ctx, spanTransportName("GetIfNewer"))
	defer func() { endFunc(result) }()

	newer, err := t.backend.IsRemoteResourceNewer(child, name, timestamp)
	if err != nil {
		return false, t.transferError(schema.NewResource(name), schema.RequestGet, "getifnewer", err)
	} else if !newer {
		t.logger.Debug().Str("resource", name).Time("timestamp", timestamp).Msg("remote is not newer")
		return false, nil
	}

	// Get fires its own error events
	if err := t.Get(child, name, destination); err != nil {
		return false, err
	}

	// Return success
	return true, nil
}

// Put uploads a local file to a resource
func (t *Transport) Put(ctx context.Context, source, destination string) (result error) {
	// OTEL span
	child, endFunc := otel.StartSpan(t.tracer, ctx, spanTransportName("Put"))
	defer func() { endFunc(result) }()

	resource := schema.NewResource(destination)
	t.transfers.FireTransferInitiated(resource, schema.RequestPut)
	t.transfers.FireTransferStarted(resource, schema.RequestPut)
	if err := t.backend.PutResource(child, source, destination, progress.New(resource, schema.RequestPut, t.transfers)); err != nil {
		return t.transferError(resource, schema.RequestPut, "put", err)
	}
	t.transfers.FireTransferCompleted(resource, schema.RequestPut)
	t.logger.Debug().Str("source", source).Str("resource", destination).Msg("put completed")

	// Return success
	return nil
}

// PutDirectory uploads every regular file under a local directory, including
// sub-directories. Symbolic links to regular files are followed, and broken
// links are skipped. Remote names are the destination directory joined with
// the relative path of each file. The first failure stops the upload.
func (t *Transport) PutDirectory(ctx context.Context, sourceDir, destinationDir string) (result error) {
	// OTEL span
	child, endFunc := otel.StartSpan(t.tracer, ctx, spanTransportName("PutDirectory"))
	defer func() { endFunc(result) }()

	result = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return wagon.NewError(wagon.ErrTransferFailed, "putdirectory", path, err)
		} else if d.IsDir() {
			return nil
		} else if d.Type()&fs.ModeSymlink != 0 {
			// Follow links to regular files
			if info, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				return nil
			} else if err != nil {
				return wagon.NewError(wagon.ErrTransferFailed, "putdirectory", path, err)
			} else if !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return wagon.NewError(wagon.ErrTransferFailed, "putdirectory", path, err)
		}
		return t.Put(child, path, joinRemote(destinationDir, filepath.ToSlash(rel)))
	})

	// Return any errors
	return result
}

// GetFileList returns the names of the entries in a remote directory
func (t *Transport) GetFileList(ctx context.Context, directory string) (_ []string, result error) {
	// OTEL span
	child, endFunc := otel.StartSpan(t.tracer, ctx, spanTransportName("GetFileList"))
	defer func() { endFunc(result) }()

	names, err := t.backend.ListDirectory(child, directory)
	if err != nil {
		return nil, t.transferError(schema.NewResource(directory), schema.RequestGet, "list", err)
	}

	// Return success
	return names, nil
}

// ResourceExists returns true if the remote resource exists
func (t *Transport) ResourceExists(ctx context.Context, name string) (_ bool, result error) {
	// OTEL span
	child, endFunc := otel.StartSpan(t.tracer, ctx, spanTransportName("ResourceExists"))
	defer func() { endFunc(result) }()

	exists, err := t.backend.DoesRemoteResourceExist(child, name)
	if err != nil {
		return false, t.transferError(schema.NewResource(name), schema.RequestGet, "exists", err)
	}

	// Return success
	return exists, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// transferError fires a transfer error event and returns the error. Errors
// without a kind are returned as transfer failures.
func (t *Transport) transferError(resource schema.Resource, request schema.RequestType, op string, err error) error {
	if !wagon.IsTyped(err) {
		err = wagon.NewError(wagon.ErrTransferFailed, op, resource.Name, err)
	}
	t.transfers.FireTransferError(resource, request, err)
	t.logger.Debug().Err(err).Str("resource", resource.Name).Stringer("request", request).Msg(op + " failed")
	return err
}

func joinRemote(dir, name string) string {
	dir = strings.TrimSuffix(dir, schema.DirectoryDelimiter)
	if dir == "" {
		return name
	}
	return dir + schema.DirectoryDelimiter + name
}
