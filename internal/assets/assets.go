// Package assets stores catalog imagery in object storage so the catalog can
// reference images by URL instead of carrying inline payloads.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// ErrUnsupportedContentType is returned for uploads that are not images.
var ErrUnsupportedContentType = errors.New("unsupported content type")

var imageExtensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// Store wraps an ObjectStorage backend and derives public URLs for uploads.
type Store struct {
	backend       ObjectStorage
	publicBaseURL string
}

// NewStore constructs a Store over the provided backend. publicBaseURL is the
// externally reachable prefix under which stored objects are served.
func NewStore(backend ObjectStorage, publicBaseURL string) *Store {
	return &Store{
		backend:       backend,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// EnsureBucket ensures the configured bucket exists.
func (s *Store) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// UploadImage stores an image under a fresh key and returns its public URL.
func (s *Store) UploadImage(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}

	key := fmt.Sprintf("images/%s.%s", uuid.NewString(), ext)
	if err := s.backend.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

// Get opens a reader for an object in the configured bucket.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.backend.Get(ctx, key)
}

// Delete removes an object from the configured bucket.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// URL returns the public URL for a stored object key.
func (s *Store) URL(key string) string {
	if s.publicBaseURL == "" {
		return fmt.Sprintf("/%s/%s", s.backend.Bucket(), key)
	}
	return fmt.Sprintf("%s/%s", s.publicBaseURL, key)
}
