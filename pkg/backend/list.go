package backend

import (
	"context"
	"strings"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListDirectory returns the names of the objects and sub-directories
// directly within a directory, relative to that directory. Sub-directory
// names end with "/". The marker object for the directory itself is not
// returned.
func (b *Backend) ListDirectory(ctx context.Context, directory string) ([]string, error) {
	store, err := b.connected("list", directory)
	if err != nil {
		return nil, err
	}

	prefix := b.key(directory)
	if directory != "" && !strings.HasSuffix(prefix, schema.DirectoryDelimiter) {
		prefix += schema.DirectoryDelimiter
	}

	// Page through the listing. Some stores return a sub-directory marker
	// both as a key and as a common prefix, so names are listed once.
	var result []string
	var token string
	seen := make(map[string]struct{})
	appendName := func(key string) {
		name := strings.TrimPrefix(key, prefix)
		if name == "" {
			return
		} else if _, exists := seen[name]; exists {
			return
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	for {
		page, err := store.List(ctx, prefix, schema.DirectoryDelimiter, token)
		if err != nil {
			if wagon.KindOf(err) == wagon.ErrAuthorization {
				return nil, err
			}
			return nil, wagon.NewError(wagon.ErrResourceMissing, "list", directory, err)
		}
		for _, key := range page.Keys {
			appendName(key)
		}
		for _, key := range page.CommonPrefixes {
			appendName(key)
		}
		if !page.Truncated || page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	// Return success
	return result, nil
}
