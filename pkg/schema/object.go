package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ACL is a canned access control policy for a written object
type ACL string

// ObjectInfo is the metadata for a stored object. LastModified is nil when
// the store does not report a modification time.
type ObjectInfo struct {
	Key          string     `json:"key"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	ContentType  string     `json:"content_type,omitempty"`
	ETag         string     `json:"etag,omitempty"`
}

// ObjectList is a single page of a prefix and delimiter listing
type ObjectList struct {
	Keys           []string `json:"keys,omitempty"`
	CommonPrefixes []string `json:"common_prefixes,omitempty"`
	Truncated      bool     `json:"truncated,omitempty"`
	NextToken      string   `json:"next_token,omitempty"`
}

// PutObjectRequest describes an object to write
type PutObjectRequest struct {
	Key           string `json:"key"`
	ContentLength int64  `json:"content_length"`
	ContentType   string `json:"content_type,omitempty"`
	ACL           ACL    `json:"acl,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ACLPrivate    ACL = "private"
	ACLPublicRead ACL = "public-read"

	// DirectoryContentType is the content type of directory markers
	DirectoryContentType = "application/x-directory"
)

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (o ObjectInfo) String() string {
	return types.Stringify(o)
}

func (o ObjectList) String() string {
	return types.Stringify(o)
}

func (r PutObjectRequest) String() string {
	return types.Stringify(r)
}
