package aws

import (
	"net/http"
	"net/url"
	"path"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// splitHosts splits a list of host patterns separated by "|" or ","
func splitHosts(hosts string) []string {
	var result []string
	for _, host := range strings.FieldsFunc(hosts, func(r rune) bool {
		return r == '|' || r == ','
	}) {
		if host = strings.ToLower(strings.TrimSpace(host)); host != "" {
			result = append(result, host)
		}
	}
	return result
}

// proxyFunc returns the proxy for a request, or nil when the request host
// matches one of the non-proxy host patterns
func proxyFunc(proxy *url.URL, nonProxyHosts []string) func(*http.Request) (*url.URL, error) {
	return func(req *http.Request) (*url.URL, error) {
		host := strings.ToLower(req.URL.Hostname())
		for _, pattern := range nonProxyHosts {
			if match, err := path.Match(pattern, host); err == nil && match {
				return nil, nil
			}
		}
		return proxy, nil
	}
}
