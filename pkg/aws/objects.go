package aws

import (
	"bytes"
	"context"
	"errors"
	"io"

	// Packages
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Objects up to this size are written with a single request, larger
	// objects with a multipart upload of parts this size
	partSize = 5 * 1024 * 1024 // 5MB
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Head returns the metadata for an object. The object is not downloaded.
func (c *Client) Head(ctx context.Context, key string) (*schema.ObjectInfo, error) {
	result, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: types.StringPtr(c.bucket),
		Key:    types.StringPtr(key),
	})
	if err != nil {
		return nil, Err(err, "head", key)
	}

	// Return the object metadata
	return &schema.ObjectInfo{
		Key:          key,
		Size:         types.PtrInt64(result.ContentLength),
		LastModified: result.LastModified,
		ContentType:  types.PtrString(result.ContentType),
		ETag:         types.PtrString(result.ETag),
	}, nil
}

// Get returns the content of an object
func (c *Client) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: types.StringPtr(c.bucket),
		Key:    types.StringPtr(key),
	})
	if err != nil {
		return nil, Err(err, "get", key)
	}
	return result.Body, nil
}

// List returns one page of keys and common prefixes under a prefix
func (c *Client) List(ctx context.Context, prefix, delimiter, token string) (*schema.ObjectList, error) {
	req := &s3.ListObjectsV2Input{
		Bucket: types.StringPtr(c.bucket),
		Prefix: types.StringPtr(prefix),
	}
	if delimiter != "" {
		req.Delimiter = types.StringPtr(delimiter)
	}
	if token != "" {
		req.ContinuationToken = types.StringPtr(token)
	}
	objects, err := c.s3.ListObjectsV2(ctx, req)
	if err != nil {
		return nil, Err(err, "list", prefix)
	}

	// Collect keys and common prefixes
	result := new(schema.ObjectList)
	for _, object := range objects.Contents {
		result.Keys = append(result.Keys, types.PtrString(object.Key))
	}
	for _, prefix := range objects.CommonPrefixes {
		result.CommonPrefixes = append(result.CommonPrefixes, types.PtrString(prefix.Prefix))
	}
	if objects.NextContinuationToken != nil && (objects.IsTruncated == nil || *objects.IsTruncated) {
		result.Truncated = true
		result.NextToken = *objects.NextContinuationToken
	}

	// Return success
	return result, nil
}

// Put writes an object, reading the body once. Bodies larger than a single
// part are written with a multipart upload.
func (c *Client) Put(ctx context.Context, req schema.PutObjectRequest, body io.Reader) error {
	if body == nil {
		return c.putObject(ctx, req, nil)
	}

	// Read the first part
	buf := make([]byte, partSize)
	n, err := io.ReadFull(body, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return c.putObject(ctx, req, buf[:n])
	} else if err != nil {
		return wagon.NewError(wagon.ErrTransferFailed, "put", req.Key, err)
	}

	// The body is larger than a single request
	return c.putMultipart(ctx, req, buf[:n], body)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) putObject(ctx context.Context, req schema.PutObjectRequest, data []byte) error {
	if _, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        types.StringPtr(c.bucket),
		Key:           types.StringPtr(req.Key),
		Body:          bytes.NewReader(data),
		ContentLength: types.Ptr(int64(len(data))),
		ContentType:   contentType(req.ContentType),
		ACL:           s3types.ObjectCannedACL(req.ACL),
	}); err != nil {
		return Err(err, "put", req.Key)
	}
	return nil
}

func (c *Client) putMultipart(ctx context.Context, req schema.PutObjectRequest, first []byte, body io.Reader) error {
	// Create a multipart upload
	upload, err := c.s3.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      types.StringPtr(c.bucket),
		Key:         types.StringPtr(req.Key),
		ContentType: contentType(req.ContentType),
		ACL:         s3types.ObjectCannedACL(req.ACL),
	})
	if err != nil {
		return Err(err, "put", req.Key)
	}

	// Upload parts, aborting the upload on any error
	var completedParts []s3types.CompletedPart
	buf := first
	for partNumber := int32(1); len(buf) > 0; partNumber++ {
		part, err := c.s3.UploadPart(ctx, &s3.UploadPartInput{
			Bucket:        types.StringPtr(c.bucket),
			Key:           types.StringPtr(req.Key),
			UploadId:      upload.UploadId,
			PartNumber:    types.Int32Ptr(partNumber),
			Body:          bytes.NewReader(buf),
			ContentLength: types.Ptr(int64(len(buf))),
		})
		if err != nil {
			return c.abort(ctx, req.Key, upload.UploadId, Err(err, "put", req.Key))
		}
		completedParts = append(completedParts, s3types.CompletedPart{
			ETag:       part.ETag,
			PartNumber: types.Int32Ptr(partNumber),
		})

		// Read the next part
		n, err := io.ReadFull(body, first[:cap(first)])
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return c.abort(ctx, req.Key, upload.UploadId, wagon.NewError(wagon.ErrTransferFailed, "put", req.Key, err))
		}
		buf = first[:n]
	}

	// Complete the multipart upload
	if _, err := c.s3.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   types.StringPtr(c.bucket),
		Key:      types.StringPtr(req.Key),
		UploadId: upload.UploadId,
		MultipartUpload: &s3types.CompletedMultipartUpload{
			Parts: completedParts,
		},
	}); err != nil {
		return c.abort(ctx, req.Key, upload.UploadId, Err(err, "put", req.Key))
	}

	// Return success
	return nil
}

// abort a multipart upload, returning the cause joined with any error
// from the abort request
func (c *Client) abort(ctx context.Context, key string, uploadId *string, cause error) error {
	if _, err := c.s3.AbortMultipartUpload(context.WithoutCancel(ctx), &s3.AbortMultipartUploadInput{
		Bucket:   types.StringPtr(c.bucket),
		Key:      types.StringPtr(key),
		UploadId: uploadId,
	}); err != nil {
		return errors.Join(cause, Err(err, "abort", key))
	}
	return cause
}

func contentType(v string) *string {
	if v == "" {
		return nil
	}
	return types.StringPtr(v)
}
