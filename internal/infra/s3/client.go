package s3

import (
	"fmt"

	"media-gateway/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const (
	emptyAWSSessionToken         = ""
	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
)

// Client is the storage adapter shared by every request. It holds no state
// beyond the bucket name and the SDK client.
type Client struct {
	bucketName string
	svc        s3iface.S3API
}

// NewClient creates a client for the configured bucket. A custom endpoint
// switches to path-style addressing, which MinIO and most S3 clones expect.
func NewClient(cfg *config.StorageConfig) (*Client, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	}

	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return NewClientWithAPI(s3.New(sess), cfg.BucketName), nil
}

// NewClientWithAPI wraps an existing SDK client.
func NewClientWithAPI(svc s3iface.S3API, bucketName string) *Client {
	return &Client{
		bucketName: bucketName,
		svc:        svc,
	}
}

// Bucket returns the bucket every operation targets.
func (c *Client) Bucket() string {
	return c.bucketName
}
