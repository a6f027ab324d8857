package transport_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	transport "github.com/mutablelogic/go-s3wagon/pkg/transport"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// backend records calls and returns configured results
type backend struct {
	connectErr    error
	disconnectErr error
	getErr        error
	putErr        error
	listErr       error
	existsErr     error
	newerErr      error
	exists        bool
	newer         bool
	names         []string
	data          []byte

	connected *schema.ConnectRequest
	gets      []string
	puts      []string
}

// recorder records session and transfer events in the order they are fired
type recorder struct {
	events []string
	errs   []error
}

////////////////////////////////////////////////////////////////////////////////
// BACKEND

func (b *backend) ConnectToRepository(_ context.Context, req schema.ConnectRequest) error {
	b.connected = &req
	return b.connectErr
}

func (b *backend) DisconnectFromRepository(context.Context) error {
	return b.disconnectErr
}

func (b *backend) DoesRemoteResourceExist(context.Context, string) (bool, error) {
	return b.exists, b.existsErr
}

func (b *backend) GetResource(_ context.Context, name, _ string, progress wagon.Progress) error {
	b.gets = append(b.gets, name)
	if b.getErr != nil {
		return b.getErr
	}
	if len(b.data) > 0 {
		progress.Notify(b.data)
	}
	return nil
}

func (b *backend) IsRemoteResourceNewer(context.Context, string, time.Time) (bool, error) {
	return b.newer, b.newerErr
}

func (b *backend) ListDirectory(context.Context, string) ([]string, error) {
	return b.names, b.listErr
}

func (b *backend) PutResource(_ context.Context, source, destination string, progress wagon.Progress) error {
	b.puts = append(b.puts, destination)
	if b.putErr != nil {
		return b.putErr
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	progress.Notify(data)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// RECORDER

func (r *recorder) SessionEvent(e schema.SessionEvent) {
	r.events = append(r.events, "SESSION_"+e.Type.String())
	if e.Err != nil {
		r.errs = append(r.errs, e.Err)
	}
}

func (r *recorder) TransferEvent(e schema.TransferEvent) {
	r.events = append(r.events, "TRANSFER_"+e.Type.String()+" "+e.Request.String()+" "+e.Resource.Name)
	if e.Err != nil {
		r.errs = append(r.errs, e.Err)
	}
}

func newTransport(t *testing.T, b *backend, opts ...transport.Opt) (*transport.Transport, *recorder) {
	t.Helper()
	tr, err := transport.New(b, opts...)
	require.NoError(t, err)
	r := new(recorder)
	tr.AddSessionListener(r)
	tr.AddTransferListener(r)
	return tr, r
}

func newRepository(t *testing.T) *schema.Repository {
	t.Helper()
	repo, err := schema.NewRepository("test", "s3://bucket/foo/bar")
	require.NoError(t, err)
	return repo
}

////////////////////////////////////////////////////////////////////////////////
// TESTS - LIFECYCLE

func TestNew(t *testing.T) {
	assert := assert.New(t)

	_, err := transport.New(nil)
	assert.Error(err)

	_, err = transport.New(new(backend), transport.WithTimeout(-time.Second))
	assert.Error(err)

	tr, err := transport.New(new(backend))
	require.NoError(t, err)
	assert.NotEmpty(tr.ID())
	assert.Nil(tr.Repository())
	assert.False(tr.Interactive())
	assert.True(tr.SupportsDirectoryCopy())
	assert.Equal(transport.DefaultTimeout, tr.Timeout())
	assert.Equal(transport.DefaultReadTimeout, tr.ReadTimeout())
	assert.NoError(tr.OpenConnection(context.TODO()))

	tr.SetInteractive(true)
	tr.SetTimeout(time.Second)
	tr.SetReadTimeout(2 * time.Second)
	assert.True(tr.Interactive())
	assert.Equal(time.Second, tr.Timeout())
	assert.Equal(2*time.Second, tr.ReadTimeout())

	tr, err = transport.New(new(backend), transport.WithDirectoryCopy(false), transport.WithInteractive(true))
	require.NoError(t, err)
	assert.False(tr.SupportsDirectoryCopy())
	assert.True(tr.Interactive())
}

func TestListeners(t *testing.T) {
	assert := assert.New(t)
	tr, err := transport.New(new(backend))
	require.NoError(t, err)

	r := new(recorder)
	assert.False(tr.HasSessionListener(r))
	assert.False(tr.HasTransferListener(r))
	tr.AddSessionListener(r)
	tr.AddTransferListener(r)
	tr.AddTransferListener(nil)
	assert.True(tr.HasSessionListener(r))
	assert.True(tr.HasTransferListener(r))
	tr.RemoveSessionListener(r)
	tr.RemoveTransferListener(r)
	assert.False(tr.HasSessionListener(r))
	assert.False(tr.HasTransferListener(r))
}

////////////////////////////////////////////////////////////////////////////////
// TESTS - SESSION

func TestConnect(t *testing.T) {
	assert := assert.New(t)
	b := new(backend)
	tr, r := newTransport(t, b, transport.WithTimeout(5*time.Second))
	repo := newRepository(t)
	auth := &schema.AuthenticationInfo{UserName: "access", Passphrase: "secret"}

	require.NoError(t, tr.Connect(context.TODO(), repo, auth, nil))
	assert.Equal([]string{"SESSION_OPENING", "SESSION_LOGGED_IN", "SESSION_OPENED"}, r.events)
	assert.Same(repo, tr.Repository())
	if assert.NotNil(b.connected) {
		assert.Same(repo, b.connected.Repository)
		assert.Same(auth, b.connected.Auth)
		assert.Equal(5*time.Second, b.connected.Timeout)
		assert.Equal(transport.DefaultReadTimeout, b.connected.ReadTimeout)
	}
}

func TestConnectWithProxy(t *testing.T) {
	assert := assert.New(t)
	b := new(backend)
	tr, _ := newTransport(t, b)
	proxy := &schema.ProxyInfo{Type: "s3", Host: "proxy"}

	require.NoError(t, tr.ConnectWithProxy(context.TODO(), newRepository(t), nil, proxy))
	if assert.NotNil(b.connected) {
		assert.Same(proxy, b.connected.ProxyFor("S3"))
		assert.Nil(b.connected.ProxyFor("http"))
	}
}

func TestConnectRefused(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		same bool
	}{
		{"connection", wagon.NewError(wagon.ErrConnection, "connect", "", nil), wagon.ErrConnection, true},
		{"authentication", wagon.NewError(wagon.ErrAuthentication, "connect", "", nil), wagon.ErrAuthentication, true},
		{"untyped", errors.New("boom"), wagon.ErrConnection, false},
		{"other kind", wagon.NewError(wagon.ErrTransferFailed, "connect", "", nil), wagon.ErrConnection, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			tr, r := newTransport(t, &backend{connectErr: tt.err})

			err := tr.Connect(context.TODO(), newRepository(t), nil, nil)
			assert.ErrorIs(err, tt.kind)
			assert.ErrorIs(err, tt.err)
			if tt.same {
				assert.Same(tt.err, err)
			}
			assert.Equal([]string{"SESSION_OPENING", "SESSION_CONNECTION_REFUSED"}, r.events)
			if assert.Len(r.errs, 1) {
				assert.Same(err, r.errs[0])
			}
		})
	}
}

func TestDisconnect(t *testing.T) {
	assert := assert.New(t)
	tr, r := newTransport(t, new(backend))

	require.NoError(t, tr.Disconnect(context.TODO()))
	assert.Equal([]string{"SESSION_DISCONNECTING", "SESSION_LOGGED_OFF", "SESSION_DISCONNECTED"}, r.events)
}

func TestDisconnectRefused(t *testing.T) {
	t.Run("connection", func(t *testing.T) {
		cause := wagon.NewError(wagon.ErrConnection, "disconnect", "", nil)
		tr, r := newTransport(t, &backend{disconnectErr: cause})

		err := tr.Disconnect(context.TODO())
		assert.Same(t, cause, err)
		assert.Equal(t, []string{"SESSION_DISCONNECTING", "SESSION_CONNECTION_REFUSED"}, r.events)
	})

	t.Run("untyped", func(t *testing.T) {
		cause := errors.New("boom")
		tr, r := newTransport(t, &backend{disconnectErr: cause})

		err := tr.Disconnect(context.TODO())
		assert.ErrorIs(t, err, wagon.ErrConnection)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, []string{"SESSION_DISCONNECTING", "SESSION_CONNECTION_REFUSED"}, r.events)
	})
}

////////////////////////////////////////////////////////////////////////////////
// TESTS - TRANSFER

func TestGet(t *testing.T) {
	assert := assert.New(t)
	tr, r := newTransport(t, &backend{data: []byte("hello")})

	require.NoError(t, tr.Get(context.TODO(), "a/b.jar", filepath.Join(t.TempDir(), "b.jar")))
	assert.Equal([]string{
		"TRANSFER_INITIATED GET a/b.jar",
		"TRANSFER_STARTED GET a/b.jar",
		"TRANSFER_PROGRESS GET a/b.jar",
		"TRANSFER_COMPLETED GET a/b.jar",
	}, r.events)
}

func TestGetError(t *testing.T) {
	// Typed errors are returned unchanged. Untyped errors are also reported
	// with a transfer error event, and returned as transfer failures.
	tests := []struct {
		name string
		err  error
		kind error
		same bool
	}{
		{"transfer failed", wagon.NewError(wagon.ErrTransferFailed, "get", "a", nil), wagon.ErrTransferFailed, true},
		{"resource missing", wagon.NewError(wagon.ErrResourceMissing, "get", "a", nil), wagon.ErrResourceMissing, true},
		{"authorization", wagon.NewError(wagon.ErrAuthorization, "get", "a", nil), wagon.ErrAuthorization, true},
		{"untyped", errors.New("boom"), wagon.ErrTransferFailed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			tr, r := newTransport(t, &backend{getErr: tt.err})

			err := tr.Get(context.TODO(), "a", filepath.Join(t.TempDir(), "a"))
			assert.ErrorIs(err, tt.kind)
			assert.ErrorIs(err, tt.err)
			if tt.same {
				assert.Same(tt.err, err)
			}
			assert.Equal([]string{
				"TRANSFER_INITIATED GET a",
				"TRANSFER_STARTED GET a",
				"TRANSFER_ERROR GET a",
			}, r.events)
			if assert.Len(r.errs, 1) {
				assert.Same(err, r.errs[0])
			}
		})
	}
}

func TestGetIfNewer(t *testing.T) {
	t.Run("not newer", func(t *testing.T) {
		b := &backend{newer: false}
		tr, r := newTransport(t, b)

		ok, err := tr.GetIfNewer(context.TODO(), "a", filepath.Join(t.TempDir(), "a"), time.Now())
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, r.events)
		assert.Empty(t, b.gets)
	})

	t.Run("newer", func(t *testing.T) {
		b := &backend{newer: true}
		tr, r := newTransport(t, b)

		ok, err := tr.GetIfNewer(context.TODO(), "a", filepath.Join(t.TempDir(), "a"), time.Now())
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"a"}, b.gets)
		assert.Equal(t, []string{
			"TRANSFER_INITIATED GET a",
			"TRANSFER_STARTED GET a",
			"TRANSFER_COMPLETED GET a",
		}, r.events)
	})

	t.Run("newer check fails", func(t *testing.T) {
		cause := wagon.NewError(wagon.ErrResourceMissing, "newer", "a", nil)
		b := &backend{newerErr: cause}
		tr, r := newTransport(t, b)

		ok, err := tr.GetIfNewer(context.TODO(), "a", filepath.Join(t.TempDir(), "a"), time.Now())
		assert.Same(t, cause, err)
		assert.False(t, ok)
		assert.Empty(t, b.gets)
		assert.Equal(t, []string{"TRANSFER_ERROR GET a"}, r.events)
	})

	t.Run("get fails", func(t *testing.T) {
		cause := wagon.NewError(wagon.ErrTransferFailed, "get", "a", nil)
		tr, r := newTransport(t, &backend{newer: true, getErr: cause})

		ok, err := tr.GetIfNewer(context.TODO(), "a", filepath.Join(t.TempDir(), "a"), time.Now())
		assert.Same(t, cause, err)
		assert.False(t, ok)
		assert.Equal(t, []string{
			"TRANSFER_INITIATED GET a",
			"TRANSFER_STARTED GET a",
			"TRANSFER_ERROR GET a",
		}, r.events)
	})
}

func TestPut(t *testing.T) {
	assert := assert.New(t)
	source := filepath.Join(t.TempDir(), "a.jar")
	require.NoError(t, os.WriteFile(source, []byte("jar"), 0o644))
	b := new(backend)
	tr, r := newTransport(t, b)

	require.NoError(t, tr.Put(context.TODO(), source, "release/1.0/a.jar"))
	assert.Equal([]string{"release/1.0/a.jar"}, b.puts)
	assert.Equal([]string{
		"TRANSFER_INITIATED PUT release/1.0/a.jar",
		"TRANSFER_STARTED PUT release/1.0/a.jar",
		"TRANSFER_PROGRESS PUT release/1.0/a.jar",
		"TRANSFER_COMPLETED PUT release/1.0/a.jar",
	}, r.events)
}

func TestPutError(t *testing.T) {
	assert := assert.New(t)
	cause := wagon.NewError(wagon.ErrAuthorization, "put", "a", nil)
	tr, r := newTransport(t, &backend{putErr: cause})

	err := tr.Put(context.TODO(), "missing", "a")
	assert.Same(cause, err)
	assert.Equal([]string{
		"TRANSFER_INITIATED PUT a",
		"TRANSFER_STARTED PUT a",
		"TRANSFER_ERROR PUT a",
	}, r.events)
}

func TestPutDirectory(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "deeper", "c.txt"), []byte("c"), 0o644))

	t.Run("destination", func(t *testing.T) {
		b := new(backend)
		tr, r := newTransport(t, b)

		require.NoError(t, tr.PutDirectory(context.TODO(), dir, "site"))
		assert.Equal([]string{"site/a.txt", "site/sub/b.txt", "site/sub/deeper/c.txt"}, b.puts)
		assert.Len(r.events, 12)
	})

	t.Run("trailing slash", func(t *testing.T) {
		b := new(backend)
		tr, _ := newTransport(t, b)

		require.NoError(t, tr.PutDirectory(context.TODO(), dir, "site/"))
		assert.Equal([]string{"site/a.txt", "site/sub/b.txt", "site/sub/deeper/c.txt"}, b.puts)
	})

	t.Run("empty destination", func(t *testing.T) {
		b := new(backend)
		tr, _ := newTransport(t, b)

		require.NoError(t, tr.PutDirectory(context.TODO(), dir, ""))
		assert.Equal([]string{"a.txt", "sub/b.txt", "sub/deeper/c.txt"}, b.puts)
	})

	t.Run("first failure aborts", func(t *testing.T) {
		cause := wagon.NewError(wagon.ErrTransferFailed, "put", "", nil)
		b := &backend{putErr: cause}
		tr, r := newTransport(t, b)

		err := tr.PutDirectory(context.TODO(), dir, "site")
		assert.Same(cause, err)
		assert.Equal([]string{"site/a.txt"}, b.puts)
		assert.Len(r.events, 3)
	})

	t.Run("symlinks", func(t *testing.T) {
		linked := t.TempDir()
		target := filepath.Join(t.TempDir(), "target.txt")
		require.NoError(t, os.WriteFile(target, []byte("target"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(linked, "a.txt"), []byte("a"), 0o644))
		if err := os.Symlink(target, filepath.Join(linked, "link.txt")); err != nil {
			t.Skip("symlinks not supported:", err)
		}
		require.NoError(t, os.Symlink(filepath.Join(linked, "missing.txt"), filepath.Join(linked, "broken.txt")))
		require.NoError(t, os.Symlink(dir, filepath.Join(linked, "linkdir")))

		b := new(backend)
		tr, _ := newTransport(t, b)
		require.NoError(t, tr.PutDirectory(context.TODO(), linked, "site"))
		assert.Equal([]string{"site/a.txt", "site/link.txt"}, b.puts)
	})

	t.Run("missing source", func(t *testing.T) {
		tr, r := newTransport(t, new(backend))

		err := tr.PutDirectory(context.TODO(), filepath.Join(dir, "missing"), "site")
		assert.ErrorIs(err, wagon.ErrTransferFailed)
		assert.Empty(r.events)
	})
}

func TestGetFileList(t *testing.T) {
	// Failures are reported as GET transfer errors, never as session errors
	t.Run("success", func(t *testing.T) {
		tr, r := newTransport(t, &backend{names: []string{"a.jar", "sub/"}})

		names, err := tr.GetFileList(context.TODO(), "release")
		assert.NoError(t, err)
		assert.Equal(t, []string{"a.jar", "sub/"}, names)
		assert.Empty(t, r.events)
	})

	t.Run("error", func(t *testing.T) {
		cause := wagon.NewError(wagon.ErrResourceMissing, "list", "release", nil)
		tr, r := newTransport(t, &backend{listErr: cause})

		names, err := tr.GetFileList(context.TODO(), "release")
		assert.Same(t, cause, err)
		assert.Nil(t, names)
		assert.Equal(t, []string{"TRANSFER_ERROR GET release"}, r.events)
	})

	t.Run("untyped error", func(t *testing.T) {
		tr, r := newTransport(t, &backend{listErr: errors.New("boom")})

		_, err := tr.GetFileList(context.TODO(), "release")
		assert.ErrorIs(t, err, wagon.ErrTransferFailed)
		assert.Equal(t, []string{"TRANSFER_ERROR GET release"}, r.events)
	})
}

func TestResourceExists(t *testing.T) {
	// Failures are reported as GET transfer errors, never as session errors
	t.Run("exists", func(t *testing.T) {
		tr, r := newTransport(t, &backend{exists: true})

		exists, err := tr.ResourceExists(context.TODO(), "a")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Empty(t, r.events)
	})

	t.Run("not exists", func(t *testing.T) {
		tr, _ := newTransport(t, &backend{exists: false})

		exists, err := tr.ResourceExists(context.TODO(), "a")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("error", func(t *testing.T) {
		cause := wagon.NewError(wagon.ErrAuthorization, "exists", "a", nil)
		tr, r := newTransport(t, &backend{existsErr: cause})

		exists, err := tr.ResourceExists(context.TODO(), "a")
		assert.Same(t, cause, err)
		assert.False(t, exists)
		assert.Equal(t, []string{"TRANSFER_ERROR GET a"}, r.events)
	})
}
