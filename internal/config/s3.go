package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	BucketName      string
	PublicBaseURL   string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// DefaultS3Config returns default S3 configuration from environment variables
func DefaultS3Config() *S3Config {
	return &S3Config{
		BucketName:      getEnvWithDefault("S3_PHOTO_BUCKET", "realty-photos"),
		PublicBaseURL:   getEnvWithDefault("S3_PUBLIC_BASE_URL", ""),
		Region:          getEnvWithDefault("AWS_REGION", "us-east-1"),
		Endpoint:        getEnvWithDefault("AWS_ENDPOINT_URL", ""),
		AccessKeyID:     getEnvWithDefault("AWS_ACCESS_KEY_ID", "dummy"),
		SecretAccessKey: getEnvWithDefault("AWS_SECRET_ACCESS_KEY", "dummy"),
	}
}

// GetClient creates an S3 client. Custom endpoints use path-style addressing.
func (c *S3Config) GetClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadAWSConfig(ctx, s3.ServiceID, c.Region, c.Endpoint, c.AccessKeyID, c.SecretAccessKey)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = c.Endpoint != ""
	}), nil
}

// ObjectURL returns the public URL of an object key. Without an explicit CDN
// base the path-style bucket URL is used.
func (c *S3Config) ObjectURL(key string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + key
	}
	if c.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.Endpoint, "/"), c.BucketName, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, key)
}
