package schema_test

import (
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestNormaliseBaseDir(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"/foo", "foo/"},
		{"/foo/", "foo/"},
		{"/foo/bar", "foo/bar/"},
		{"/foo/bar/", "foo/bar/"},
		{"foo", "foo/"},
		{"//", ""},
		{"//foo", "foo/"},
		{"/foo//", "foo/"},
		{"///foo/bar///", "foo/bar/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.NormaliseBaseDir(tt.in))
		})
	}
}

func TestNewRepository(t *testing.T) {
	t.Run("bucket and base", func(t *testing.T) {
		repo, err := schema.NewRepository("releases", "s3://my-bucket/foo/bar")
		require.NoError(t, err)
		assert.Equal(t, "s3", repo.Scheme())
		assert.Equal(t, "my-bucket", repo.Bucket())
		assert.Equal(t, "foo/bar/", repo.BaseDir())
		assert.Equal(t, "", repo.Region())
	})

	t.Run("root", func(t *testing.T) {
		repo, err := schema.NewRepository("", "s3://my-bucket/")
		require.NoError(t, err)
		assert.Equal(t, "", repo.BaseDir())
	})

	t.Run("query parameters", func(t *testing.T) {
		repo, err := schema.NewRepository("", "s3://my-bucket/maven?region=eu-west-1&endpoint=http://localhost:9000")
		require.NoError(t, err)
		assert.Equal(t, "maven/", repo.BaseDir())
		assert.Equal(t, "eu-west-1", repo.Region())
		assert.Equal(t, "http://localhost:9000", repo.Endpoint())
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := schema.NewRepository("", "s3:///foo")
		assert.Error(t, err)
	})

	t.Run("file", func(t *testing.T) {
		repo, err := schema.NewRepository("local", "file:///var/maven/repo")
		require.NoError(t, err)
		assert.Equal(t, "file", repo.Scheme())
		assert.Equal(t, "", repo.Bucket())
		assert.Equal(t, "/var/maven/repo", repo.URL.Path)
	})

	t.Run("missing scheme", func(t *testing.T) {
		_, err := schema.NewRepository("", "my-bucket/foo")
		assert.Error(t, err)
	})

	t.Run("nil repository", func(t *testing.T) {
		var repo *schema.Repository
		assert.Equal(t, "", repo.Bucket())
		assert.Equal(t, "", repo.BaseDir())
	})
}

func TestProxyInfoProvider(t *testing.T) {
	proxy := &schema.ProxyInfo{Type: "HTTP", Host: "proxy.local", Port: 3128}

	tests := []struct {
		name     string
		proxy    *schema.ProxyInfo
		protocol string
		want     *schema.ProxyInfo
	}{
		{"empty protocol", proxy, "", proxy},
		{"matching protocol", proxy, "HTTP", proxy},
		{"matching protocol case", proxy, "http", proxy},
		{"other protocol", proxy, "socks5", nil},
		{"nil proxy", nil, "http", nil},
		{"nil proxy empty protocol", nil, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := schema.NewProxyInfoProvider(tt.proxy)
			assert.Same(t, tt.want, provider.ProxyInfo(tt.protocol))
		})
	}

	t.Run("connect request", func(t *testing.T) {
		req := schema.ConnectRequest{}
		assert.Nil(t, req.ProxyFor(schema.ProtocolHTTP))
		req.Proxy = schema.NewProxyInfoProvider(proxy)
		assert.Same(t, proxy, req.ProxyFor(schema.ProtocolHTTP))
	})
}

func TestEventTypes(t *testing.T) {
	assert.Equal(t, "OPENING", schema.SessionOpening.String())
	assert.Equal(t, "CONNECTION_REFUSED", schema.SessionConnectionRefused.String())
	assert.Equal(t, "LOGGED_OFF", schema.SessionLoggedOff.String())
	assert.Equal(t, "PROGRESS", schema.TransferProgress.String())
	assert.Equal(t, "GET", schema.RequestGet.String())
	assert.Equal(t, "PUT", schema.RequestPut.String())

	event := schema.TransferEvent{Type: schema.TransferProgress, Data: []byte("hello")}
	assert.Equal(t, 5, event.Length())

	var r schema.RequestType
	assert.NoError(t, r.UnmarshalText([]byte("put")))
	assert.Equal(t, schema.RequestPut, r)
}
