package schema

import (
	"strings"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// AuthenticationInfo holds the credentials used to connect. For S3 the
// UserName is the access key and the Passphrase is the secret key.
type AuthenticationInfo struct {
	UserName   string `json:"username,omitempty"`
	Password   string `json:"-"`
	Passphrase string `json:"-"`
	PrivateKey string `json:"private_key,omitempty"`
}

// ProxyInfo describes a proxy server for a single protocol
type ProxyInfo struct {
	Type          string `json:"type"`
	Host          string `json:"host"`
	Port          int    `json:"port,omitempty"`
	UserName      string `json:"username,omitempty"`
	Password      string `json:"-"`
	NonProxyHosts string `json:"non_proxy_hosts,omitempty"`
}

// ProxyInfoProvider resolves proxy settings for a protocol, or returns nil
// when no proxy should be used
type ProxyInfoProvider interface {
	ProxyInfo(protocol string) *ProxyInfo
}

// ConnectRequest is passed to a backend when connecting to a repository
type ConnectRequest struct {
	Repository  *Repository         `json:"repository"`
	Auth        *AuthenticationInfo `json:"auth,omitempty"`
	Proxy       ProxyInfoProvider   `json:"-"`
	Timeout     time.Duration       `json:"timeout,omitempty"`
	ReadTimeout time.Duration       `json:"read_timeout,omitempty"`
}

type proxyInfoProvider struct {
	proxy *ProxyInfo
}

var _ ProxyInfoProvider = (*proxyInfoProvider)(nil)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewProxyInfoProvider returns a provider for a single proxy. The proxy is
// returned when the protocol is empty, the proxy is nil, or the protocol
// matches the proxy type (case-insensitive); otherwise nil is returned.
func NewProxyInfoProvider(proxy *ProxyInfo) ProxyInfoProvider {
	return &proxyInfoProvider{proxy: proxy}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (a AuthenticationInfo) String() string {
	return types.Stringify(a)
}

func (p ProxyInfo) String() string {
	return types.Stringify(p)
}

func (r ConnectRequest) String() string {
	return types.Stringify(r)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (p *proxyInfoProvider) ProxyInfo(protocol string) *ProxyInfo {
	if protocol == "" || p.proxy == nil || strings.EqualFold(protocol, p.proxy.Type) {
		return p.proxy
	}
	return nil
}

// ProxyFor returns the proxy for a protocol from the request, or nil
func (r ConnectRequest) ProxyFor(protocol string) *ProxyInfo {
	if r.Proxy == nil {
		return nil
	}
	return r.Proxy.ProxyInfo(protocol)
}
