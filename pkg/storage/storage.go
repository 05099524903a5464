package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
	"go.uber.org/zap"
)

// Client is an S3-compatible object storage client holding user photos
type Client struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
}

// NewClient creates a new object storage client using the S3 SDK
func NewClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*Client, error) {
	if endpoint == "" {
		endpoint = "https://s3.amazonaws.com"
	}
	if region == "" {
		region = "us-east-1"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	})

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// EnsureBucket verifies the configured bucket exists and is reachable.
// A missing bucket is a deployment error that must surface to the operator.
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	})
	if err != nil {
		return fmt.Errorf("storage bucket %q is not accessible (create it or fix credentials): %w", c.bucketName, err)
	}
	return nil
}

// Upload stores an object and returns its public URL
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	start := time.Now()
	operation := "upload"

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	return c.PublicURL(key), nil
}

// Delete removes an object by key
func (c *Client) Delete(ctx context.Context, key string) error {
	start := time.Now()
	operation := "delete"

	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("failed to delete object: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()

	return nil
}

// PublicURL constructs the public URL of an object
// Format: {endpoint}/{bucket}/{key}
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucketName, key)
}

// KeyFromURL extracts the object key from a public URL produced by PublicURL.
// Returns false if the URL does not point into this client's bucket.
func (c *Client) KeyFromURL(publicURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", c.endpoint, c.bucketName)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(publicURL, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}
