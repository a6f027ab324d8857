package aws

import (
	"context"
	"errors"

	// Packages
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	wagon "github.com/mutablelogic/go-s3wagon"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LocationRegion returns the region for a bucket location constraint.
// Buckets created before regions were named report an empty constraint or
// "US" for us-east-1, and "EU" for eu-west-1.
func LocationRegion(constraint string) string {
	switch constraint {
	case "", "US":
		return defaultRegion
	case "EU":
		return "eu-west-1"
	default:
		return constraint
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// bucketRegion returns the region of a bucket. When the caller is not
// permitted to read the location, an empty region is returned so that the
// configured region is used.
func bucketRegion(ctx context.Context, client S3API, bucket string) (string, error) {
	location, err := client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: types.StringPtr(bucket),
	})
	if err != nil {
		if errors.Is(Err(err, "", ""), wagon.ErrAuthorization) {
			return "", nil
		}
		return "", wagon.NewError(wagon.ErrConnection, "location", bucket, err)
	}
	return LocationRegion(string(location.LocationConstraint)), nil
}
