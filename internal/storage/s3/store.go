package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"showroom/internal/storage"
)

// Store is an S3-backed BlobStore for GLB assets. Works against AWS S3 and
// any S3-compatible endpoint (Supabase Storage exposes one).
type Store struct {
	client    *s3.Client
	bucket    string
	urlPrefix string
	logger    *slog.Logger
}

// NewStore creates a new S3-based blob store. urlPrefix is the public base
// URL under which uploaded objects are served; when empty, the standard
// virtual-hosted S3 URL form is used.
func NewStore(ctx context.Context, bucket, urlPrefix string, logger *slog.Logger) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load storage SDK config: %w", err)
	}

	return &Store{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		logger:    logger,
	}, nil
}

// Upload stores the payload under key and returns its public URL
func (s *Store) Upload(ctx context.Context, key string, payload io.Reader, size int64, onProgress storage.ProgressFunc) (string, error) {
	body := storage.NewProgressReader(payload, size, onProgress)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("model/gltf-binary"),
		CacheControl:  aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}

	s.logger.Info("asset uploaded", "bucket", s.bucket, "key", key, "bytes", size)

	return s.publicURL(key), nil
}

// Delete removes one stored object. Deleting a missing key is not an error
// in S3, which matches the best-effort cleanup semantics callers rely on.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	s.logger.Info("asset deleted", "bucket", s.bucket, "key", key)
	return nil
}

func (s *Store) publicURL(key string) string {
	if s.urlPrefix != "" {
		return s.urlPrefix + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

// KeyFromURL recovers the object key from a public URL produced by Upload.
// Used for blob cleanup when a product record is deleted.
func (s *Store) KeyFromURL(url string) string {
	if s.urlPrefix != "" {
		if key, ok := strings.CutPrefix(url, s.urlPrefix+"/"); ok {
			return key
		}
	}
	host := fmt.Sprintf("https://%s.s3.amazonaws.com/", s.bucket)
	if key, ok := strings.CutPrefix(url, host); ok {
		return key
	}
	return ""
}
