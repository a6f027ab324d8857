package schema

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	SchemaName = "s3wagon"

	// DirectoryDelimiter separates path segments in object keys. Keys which
	// end with the delimiter are zero-length directory markers.
	DirectoryDelimiter = "/"

	// ProtocolHTTP is the protocol used when resolving proxy settings
	// for the object store.
	ProtocolHTTP = "http"
)

// Repository schemes
const (
	SchemeS3   = "s3"
	SchemeMem  = "mem"
	SchemeFile = "file"
)
