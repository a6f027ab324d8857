package blob

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	blob "gocloud.dev/blob"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// List returns one page of keys and common prefixes under a prefix
func (s *Store) List(ctx context.Context, prefix, delimiter, token string) (*schema.ObjectList, error) {
	if err := s.isOpen(); err != nil {
		return nil, err
	}

	// Continue from the token, or start from the first page
	pageToken := blob.FirstPageToken
	if token != "" {
		pageToken = []byte(token)
	}
	objs, next, err := s.bucket.ListPage(ctx, pageToken, pageSize, &blob.ListOptions{
		Prefix:    prefix,
		Delimiter: delimiter,
	})
	if err != nil {
		return nil, blobErr(err, "list", prefix)
	}

	// Separate keys from common prefixes
	result := new(schema.ObjectList)
	for _, obj := range objs {
		if obj.IsDir {
			result.CommonPrefixes = append(result.CommonPrefixes, obj.Key)
		} else {
			result.Keys = append(result.Keys, obj.Key)
		}
	}
	if len(next) > 0 {
		result.Truncated = true
		result.NextToken = string(next)
	}

	// Return success
	return result, nil
}
