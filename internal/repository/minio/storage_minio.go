package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/njprem/tokyo_attractions_backend/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage uploads objects into one bucket.
type Storage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewStorage(client *minio.Client, bucket, publicBase string) *Storage {
	return &Storage{
		client:     client,
		bucket:     strings.TrimSpace(bucket),
		publicBase: strings.TrimRight(strings.TrimSpace(publicBase), "/"),
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio: check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio: create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *Storage) Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio: put %s: %w", objectName, err)
	}
	return s.objectURL(objectName), nil
}

func (s *Storage) objectURL(objectName string) string {
	key := strings.TrimLeft(objectName, "/")
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	u := url.URL{
		Scheme: "http",
		Host:   s.client.EndpointURL().Host,
		Path:   "/" + s.bucket + "/" + key,
	}
	if s.client.EndpointURL().Scheme != "" {
		u.Scheme = s.client.EndpointURL().Scheme
	}
	return u.String()
}

var _ ports.ObjectStorage = (*Storage)(nil)
