package aws

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type opt struct {
	region         string
	endpoint       string
	accessKey      string
	secretKey      string
	proxy          *url.URL
	nonProxyHosts  []string
	timeout        time.Duration
	readTimeout    time.Duration
	tracerProvider trace.TracerProvider
}

// Opt represents a function that modifies the options
type Opt func(*opt) error

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(opts ...Opt) (*opt, error) {
	var o opt

	// Apply the options
	for _, fn := range opts {
		if err := fn(&o); err != nil {
			return nil, err
		}
	}

	// Return success
	return &o, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithRegion sets the region. When no region or endpoint is set, the
// region is determined from the bucket location.
func WithRegion(region string) Opt {
	return func(o *opt) error {
		o.region = region
		return nil
	}
}

// WithEndpoint sets the endpoint for S3-compatible services, which are
// addressed with path-style requests
func WithEndpoint(endpoint string) Opt {
	return func(o *opt) error {
		if endpoint == "" {
			return nil
		} else if u, err := url.Parse(endpoint); err != nil {
			return err
		} else if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint must be http:// or https://, got %q", endpoint)
		}
		o.endpoint = endpoint
		return nil
	}
}

// WithCredentials sets static credentials. Without credentials the
// default credential chain is used.
func WithCredentials(accessKey, secretKey string) Opt {
	return func(o *opt) error {
		if accessKey == "" || secretKey == "" {
			return fmt.Errorf("access key and secret key are required")
		}
		o.accessKey = accessKey
		o.secretKey = secretKey
		return nil
	}
}

// WithProxy routes requests through a proxy. A nil proxy, or one without
// a host, is ignored.
func WithProxy(proxy *schema.ProxyInfo) Opt {
	return func(o *opt) error {
		if proxy == nil || proxy.Host == "" {
			return nil
		}
		scheme := "http"
		if strings.HasPrefix(strings.ToLower(proxy.Type), "socks") {
			scheme = "socks5"
		}
		host := proxy.Host
		if proxy.Port > 0 {
			host = net.JoinHostPort(proxy.Host, strconv.Itoa(proxy.Port))
		}
		o.proxy = &url.URL{Scheme: scheme, Host: host}
		if proxy.UserName != "" {
			o.proxy.User = url.UserPassword(proxy.UserName, proxy.Password)
		}
		o.nonProxyHosts = splitHosts(proxy.NonProxyHosts)
		return nil
	}
}

// WithTimeout sets the connect timeout
func WithTimeout(timeout time.Duration) Opt {
	return func(o *opt) error {
		o.timeout = timeout
		return nil
	}
}

// WithReadTimeout sets the time to wait for response headers
func WithReadTimeout(timeout time.Duration) Opt {
	return func(o *opt) error {
		o.readTimeout = timeout
		return nil
	}
}

// WithTracerProvider adds AWS SDK middleware so that each S3 API call
// produces a span
func WithTracerProvider(provider trace.TracerProvider) Opt {
	return func(o *opt) error {
		o.tracerProvider = provider
		return nil
	}
}
