package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/kurin/blazer/b2"
	"github.com/oklog/ulid/v2"
)

// Directories files are stored under, one per upload surface.
const (
	DirAwards     = "awards"
	DirNews       = "news"
	DirHeroSlides = "hero-slides"
	DirPhotos     = "applicants/photos"
	DirDocuments  = "applicants/documents"
)

type B2Storage struct {
	Client *b2.Client
	Bucket *b2.Bucket
}

func Init(ctx context.Context, accountID, appKey, bucketName string) (*B2Storage, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &B2Storage{Client: client, Bucket: bucket}, nil
}

// Upload stores the reader under dir with a ULID-based object key and
// returns the key. The original filename only contributes its extension.
func (s *B2Storage) Upload(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	key := dir + "/" + ulid.Make().String() + strings.ToLower(path.Ext(filename))

	obj := s.Bucket.Object(key)
	w := obj.NewWriter(ctx)

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return key, nil
}

func (s *B2Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.Bucket.Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// URL returns the public download URL for a stored key. BaseURL lives on
// the bucket, which carries the per-account download host.
func (s *B2Storage) URL(key string) string {
	return downloadURL(s.Bucket.BaseURL(), s.Bucket.Name(), key)
}

func downloadURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/file/%s/%s", base, bucket, key)
}
