// Package integrations holds clients for external services. Today that is
// only the object store where the membership plugin keeps profile photos.
package integrations

import (
	"context"
	"fmt"
	"strings"

	"vertical/backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// profilePhotoPrefix is the folder layout the membership plugin uses for
// member uploads.
const profilePhotoPrefix = "ultimatemember"

// S3Client wraps the bucket holding WordPress media uploads.
type S3Client struct {
	bucket string
	client *s3.Client
}

// NewS3 creates the media bucket client. Endpoint is optional; without one
// the client talks to AWS proper.
func NewS3(ctx context.Context, cfg config.S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	options := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if endpoint := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL); endpoint != "" {
		options.BaseEndpoint = aws.String(endpoint)
	}

	return &S3Client{
		bucket: cfg.Bucket,
		client: s3.New(options),
	}, nil
}

// GetObject returns object.
func (s *S3Client) GetObject(ctx context.Context, key string) (*s3.GetObjectOutput, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	return s.client.GetObject(ctx, input)
}

// ProfilePhotoKey builds the object key of one member's profile photo.
func ProfilePhotoKey(userID int64, fileName string) string {
	safeName := strings.ReplaceAll(fileName, " ", "-")
	safeName = strings.TrimLeft(safeName, "/")
	return fmt.Sprintf("%s/%d/%s", profilePhotoPrefix, userID, safeName)
}

// normalizeEndpoint normalizes endpoint.
func normalizeEndpoint(endpoint string, useSSL bool) string {
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "http") {
		return endpoint
	}
	scheme := "https"
	if !useSSL {
		scheme = "http"
	}
	return scheme + "://" + endpoint
}
