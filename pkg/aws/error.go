package aws

import (
	"errors"
	"net/http"

	// Packages
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	smithy "github.com/aws/smithy-go"
	wagon "github.com/mutablelogic/go-s3wagon"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Err wraps an S3 error with the matching error kind
func Err(err error, op, key string) error {
	if err == nil {
		return nil
	}
	return wagon.NewError(kindOf(err), op, key, err)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func kindOf(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return wagon.ErrResourceMissing
		case "AccessDenied", "Forbidden", "AllAccessDisabled", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return wagon.ErrAuthorization
		}
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return wagon.ErrResourceMissing
		case http.StatusForbidden:
			return wagon.ErrAuthorization
		}
	}
	return wagon.ErrTransferFailed
}
