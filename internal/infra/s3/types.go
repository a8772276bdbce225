package s3

import (
	"io"
	"time"
)

// ObjectSummary is one entry of a bucket listing.
type ObjectSummary struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectListing is the result of a single listing call. Truncated is set when
// the store holds more keys than one call returns.
type ObjectListing struct {
	Objects   []ObjectSummary
	Truncated bool
}

// ObjectStream is an open object body. The caller must close Body.
type ObjectStream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	ContentRange  string
}

// Partial reports whether the store answered a byte-range request.
func (o *ObjectStream) Partial() bool {
	return o.ContentRange != ""
}
