package schema

import "strings"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Resource is a file being transferred, identified by its relative path
type Resource struct {
	Name string `json:"name"`
}

// RequestType tags every transfer event
type RequestType uint

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RequestGet RequestType = iota
	RequestPut
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewResource(name string) Resource {
	return Resource{Name: name}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Resource) String() string {
	return r.Name
}

func (r RequestType) String() string {
	switch r {
	case RequestGet:
		return "GET"
	case RequestPut:
		return "PUT"
	default:
		return "UNKNOWN"
	}
}

func (r RequestType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RequestType) UnmarshalText(data []byte) error {
	switch strings.ToUpper(string(data)) {
	case "PUT":
		*r = RequestPut
	default:
		*r = RequestGet
	}
	return nil
}
