package progress

import (
	"io"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	listener "github.com/mutablelogic/go-s3wagon/pkg/listener"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// TransferProgress forwards the bytes of each read or write as a transfer
// progress event for a single resource
type TransferProgress struct {
	resource  schema.Resource
	request   schema.RequestType
	transfers *listener.Transfers
}

// reader notifies progress for every read which returns data
type reader struct {
	r        io.Reader
	progress wagon.Progress
}

// writer notifies progress for every write which accepts data
type writer struct {
	w        io.Writer
	progress wagon.Progress
}

var _ wagon.Progress = (*TransferProgress)(nil)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// BufferSize is the size of the buffer used by Copy
const BufferSize = 8 * 1024

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a progress observer for a resource and request type
func New(resource schema.Resource, request schema.RequestType, transfers *listener.Transfers) *TransferProgress {
	return &TransferProgress{resource: resource, request: request, transfers: transfers}
}

// NewReader wraps r so that every read of n > 0 bytes notifies progress
// with exactly those n bytes
func NewReader(r io.Reader, progress wagon.Progress) io.ReadCloser {
	return &reader{r: r, progress: progress}
}

// NewWriter wraps w so that every write of n > 0 bytes notifies progress
// with exactly those n bytes
func NewWriter(w io.Writer, progress wagon.Progress) io.WriteCloser {
	return &writer{w: w, progress: progress}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (p *TransferProgress) Resource() schema.Resource {
	return p.resource
}

func (p *TransferProgress) Request() schema.RequestType {
	return p.request
}

// Notify fires a single progress event with the data
func (p *TransferProgress) Notify(data []byte) {
	if p.transfers != nil {
		p.transfers.FireTransferProgress(p.resource, p.request, data)
	}
}

// Copy copies src to dst using a fixed size buffer, returning the number
// of bytes copied
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, BufferSize)
	return io.CopyBuffer(onlyWriter{dst}, onlyReader{src}, buf)
}

////////////////////////////////////////////////////////////////////////////////
// io.Reader

func (r *reader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)
	if n > 0 && r.progress != nil {
		r.progress.Notify(buf[:n])
	}
	return n, err
}

func (r *reader) Close() error {
	if closer, ok := r.r.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// io.Writer

func (w *writer) Write(buf []byte) (int, error) {
	n, err := w.w.Write(buf)
	if n > 0 && w.progress != nil {
		w.progress.Notify(buf[:n])
	}
	return n, err
}

func (w *writer) Close() error {
	if closer, ok := w.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// onlyReader and onlyWriter hide ReaderFrom and WriterTo so that
// io.CopyBuffer always goes through the buffer
type onlyReader struct {
	io.Reader
}

type onlyWriter struct {
	io.Writer
}
