// Package s3 is the object-storage sink for export files.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/praxislab/comptrack/internal/model"
)

// Internal adapter interface to enable mocking without a real endpoint.
type s3API interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ model.ObjectSink = (*Client)(nil)

// Client stores objects in a single bucket.
type Client struct {
	api    s3API
	bucket string
}

// NewClient creates a sink over a real S3 client.
func NewClient(client *s3.Client, bucket string) *Client {
	return NewClientWithAPI(client, bucket)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(api s3API, bucket string) *Client {
	return &Client{api: api, bucket: bucket}
}

// PutObject uploads a complete object under the given path.
func (c *Client) PutObject(ctx context.Context, path string, body []byte) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(path),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

// GetObject retrieves an object by path.
func (c *Client) GetObject(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return out.Body, nil
}
