package echo

import (
	"context"
	"io"

	"media-gateway/internal/infra/s3"
)

// ObjectStore is the subset of the storage adapter the handlers need.
// *s3.Client satisfies it; tests substitute an in-memory store.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body io.ReadSeeker, size int64) error
	ListObjects(ctx context.Context) (*s3.ObjectListing, error)
	GetObject(ctx context.Context, key, byteRange string) (*s3.ObjectStream, error)
	Bucket() string
}

var _ ObjectStore = (*s3.Client)(nil)
