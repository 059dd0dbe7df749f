// Package media uploads video files, thumbnails, and profile images to an
// S3-compatible object store and serves their public URLs. Uploaded objects
// are addressed by key so they can be deleted when the owning entity goes
// away.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tbourn/go-video-backend/internal/config"
)

// Asset is an uploaded object: its public URL and the store key needed to
// delete it later.
type Asset struct {
	URL string
	Key string
}

// Store is the object-store contract consumed by the service layer.
// Implementations must be safe for concurrent use.
type Store interface {
	// Upload stores the content under key and returns the public asset.
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (Asset, error)
	// Delete removes a previously uploaded object. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error
}

// S3Store implements Store against AWS S3 or any S3-compatible service
// (MinIO, R2) via a custom endpoint with path-style addressing.
type S3Store struct {
	uploader *manager.Uploader
	client   *s3.Client
	bucket   string
	baseURL  string
	timeout  time.Duration
}

// NewS3Store configures an uploader targeting the bucket in cfg. A custom
// endpoint switches the client to path-style addressing; static credentials
// are used when configured, otherwise the default AWS chain applies.
func NewS3Store(ctx context.Context, cfg config.MediaConfig) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("media: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
			o.BaseEndpoint = aws.String(ep)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &S3Store{
		uploader: uploader,
		client:   client,
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		timeout:  cfg.UploadTimeout,
	}, nil
}

// Upload stores the content under key and returns its public URL and key.
func (s *S3Store) Upload(ctx context.Context, key string, r io.Reader, contentType string) (Asset, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return Asset{}, fmt.Errorf("media: empty key")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
		ACL:    s3types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.uploader.Upload(ctx, in); err != nil {
		return Asset{}, fmt.Errorf("media: upload %s: %w", key, err)
	}

	url := key
	if s.baseURL != "" {
		url = s.baseURL + "/" + key
	}
	return Asset{URL: url, Key: key}, nil
}

// Delete removes the object stored under key. S3 treats deleting an absent
// key as success, which is exactly the cleanup semantics callers want.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return nil
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("media: delete %s: %w", key, err)
	}
	return nil
}
