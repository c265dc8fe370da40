package storage

import (
	"context"
	"errors"
	"io"
)

var ErrDisabled = errors.New("object storage is not configured")

// Disabled stands in when no B2 credentials are set; uploads fail with a
// clear error and deletes are no-ops.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Delete(ctx context.Context, key string) error {
	return nil
}

func (Disabled) URL(key string) string {
	return ""
}
