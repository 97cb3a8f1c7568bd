// Package storage wraps the S3-compatible bucket that holds uploaded
// guest KYC documents.  The bucket is private: staff view documents via
// short-lived presigned URLs, never a public link.
package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Hostizzy/hostizzy-pms/internal/config"
)

// MaxDocumentBytes caps a single KYC upload.
const MaxDocumentBytes = 5 << 20 // 5 MB

// ErrUnavailable is returned when no object store is configured.
var ErrUnavailable = errors.New("storage: object store not configured")

// allowed upload content types
var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// ErrContentType is returned for uploads that are not an image or PDF.
var ErrContentType = errors.New("storage: content type not allowed")

// Store is a thin client over a single MinIO/S3 bucket.
type Store struct {
	bucket   string
	client   *minio.Client
	logger   *slog.Logger
	initOnce sync.Once
	initErr  error
}

// New builds a Store from config.  A nil Store (with nil error) is
// returned when the endpoint is unset so callers can treat document
// upload as an optional feature.
func New(cfg config.ObjectStoreConfig, logger *slog.Logger) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Store{bucket: cfg.Bucket, client: client, logger: logger}, nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if !exists {
			s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		}
	})
	return s.initErr
}

// Put stores a document under the given key and returns the object key
// back.  Size must be known up front so the 5 MB cap is enforced before
// any bytes move.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s == nil {
		return "", ErrUnavailable
	}
	if !allowedTypes[contentType] {
		return "", ErrContentType
	}
	if size <= 0 || size > MaxDocumentBytes {
		return "", errors.New("storage: document size out of range")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("kyc document stored", "bucket", s.bucket, "key", key, "bytes", size)
	return key, nil
}

// PresignGet returns a time-limited download URL for a stored document.
func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s == nil {
		return "", ErrUnavailable
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Remove deletes a stored document; used by retention cleanup once a
// guest ID passes its delete_after date.
func (s *Store) Remove(ctx context.Context, key string) error {
	if s == nil {
		return ErrUnavailable
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
