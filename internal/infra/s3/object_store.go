package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	unknownContentLength    = int64(-1)
	errFailedPutObjectFmt   = "failed to put object %q: %w"
	errFailedListObjectsFmt = "failed to list objects in bucket %q: %w"
	errFailedGetObjectFmt   = "failed to get object %q: %w"
	errEmptyResponseBodyFmt = "object %q returned no body"
)

// PutObject stores body under key. Existing objects with the same key are
// replaced. size may be negative when the length is unknown.
func (c *Client) PutObject(ctx context.Context, key, contentType string, body io.ReadSeeker, size int64) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
		Body:   body,
	}

	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := c.svc.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf(errFailedPutObjectFmt, key, err)
	}

	return nil
}

// ListObjects issues a single ListObjectsV2 call. It does not follow
// continuation tokens; callers see Truncated instead.
func (c *Client) ListObjects(ctx context.Context) (*ObjectListing, error) {
	resp, err := c.svc.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucketName),
	})
	if err != nil {
		return nil, fmt.Errorf(errFailedListObjectsFmt, c.bucketName, err)
	}

	listing := &ObjectListing{
		Objects:   make([]ObjectSummary, 0, len(resp.Contents)),
		Truncated: aws.BoolValue(resp.IsTruncated),
	}

	for _, obj := range resp.Contents {
		listing.Objects = append(listing.Objects, ObjectSummary{
			Key:          aws.StringValue(obj.Key),
			Size:         aws.Int64Value(obj.Size),
			LastModified: aws.TimeValue(obj.LastModified),
		})
	}

	return listing, nil
}

// GetObject opens key for reading. byteRange is an HTTP Range header value
// forwarded verbatim; empty means the whole object.
func (c *Client) GetObject(ctx context.Context, key, byteRange string) (*ObjectStream, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	}

	if byteRange != "" {
		input.Range = aws.String(byteRange)
	}

	resp, err := c.svc.GetObjectWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf(errFailedGetObjectFmt, key, err)
	}

	if resp.Body == nil {
		return nil, fmt.Errorf(errEmptyResponseBodyFmt, key)
	}

	length := unknownContentLength
	if resp.ContentLength != nil {
		length = *resp.ContentLength
	}

	return &ObjectStream{
		Body:          resp.Body,
		ContentType:   aws.StringValue(resp.ContentType),
		ContentLength: length,
		ContentRange:  aws.StringValue(resp.ContentRange),
	}, nil
}
