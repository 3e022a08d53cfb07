// bundle/s3.go
package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Config configures an S3 bundle source.
type S3Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string

	// Region is the AWS region. If empty, the default chain decides.
	Region string

	// Prefix is prepended to every bundle key, e.g. "theme-bundles".
	Prefix string

	// AccessKeyID and SecretAccessKey override the default credential
	// chain when both are set.
	AccessKeyID     string
	SecretAccessKey string

	// Endpoint overrides the S3 endpoint for MinIO and other
	// S3-compatible services.
	Endpoint string

	// UsePathStyle forces path-style addressing, which MinIO requires.
	UsePathStyle bool
}

// S3 fetches bundles from an S3 bucket.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 creates an S3 bundle source.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bundle: s3 bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("bundle: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Fetch downloads the bundle object stored at <prefix>/<name>.zip.
func (s *S3) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	if !safeName(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	key := zipName(name)
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "NoSuchKey", "NotFound", "404":
				return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
			}
		}
		return nil, fmt.Errorf("bundle: fetch %s: %w", name, err)
	}
	return out.Body, nil
}
