package schema

import (
	"fmt"
	"net/url"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Repository identifies a remote endpoint, in the form
// scheme://bucket/basePath. The query parameters "region" and "endpoint"
// are passed through to the object store.
type Repository struct {
	ID  string   `json:"id,omitempty"`
	URL *url.URL `json:"url"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRepository parses a repository URL. The host component is required
// and is used as the bucket name, except for file repositories where the
// path is the local directory.
func NewRepository(id, rawurl string) (*Repository, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	} else if u.Scheme == "" {
		return nil, fmt.Errorf("repository %q: missing scheme", rawurl)
	} else if u.Host == "" && !strings.EqualFold(u.Scheme, SchemeFile) {
		return nil, fmt.Errorf("repository %q: missing bucket name", rawurl)
	}
	return &Repository{ID: id, URL: u}, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Repository) String() string {
	return types.Stringify(r)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Scheme returns the URL scheme of the repository, in lowercase
func (r *Repository) Scheme() string {
	if r == nil || r.URL == nil {
		return ""
	}
	return strings.ToLower(r.URL.Scheme)
}

// Bucket returns the bucket name, which is the host component of the URL
func (r *Repository) Bucket() string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Host
}

// BaseDir returns the normalised base directory of the repository
func (r *Repository) BaseDir() string {
	if r == nil || r.URL == nil {
		return ""
	}
	return NormaliseBaseDir(r.URL.Path)
}

// Region returns the "region" query parameter, or empty string
func (r *Repository) Region() string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Query().Get("region")
}

// Endpoint returns the "endpoint" query parameter, or empty string
func (r *Repository) Endpoint() string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Query().Get("endpoint")
}

// NormaliseBaseDir strips leading slashes and ensures a single trailing
// slash. An empty or root path normalises to the empty string.
func NormaliseBaseDir(path string) string {
	path = strings.Trim(path, DirectoryDelimiter)
	if path == "" {
		return ""
	}
	return path + DirectoryDelimiter
}
