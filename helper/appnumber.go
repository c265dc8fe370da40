package helper

import (
	"crypto/rand"
	"fmt"
)

const appNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewApplicationNumber returns a human-readable application number in the
// form APP- followed by 10 uppercase alphanumerics. Collisions are unlikely
// but not excluded; the applications table carries a unique index and the
// caller retries once on conflict.
func NewApplicationNumber() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate application number: %w", err)
	}
	for i, b := range buf {
		buf[i] = appNumberCharset[int(b)%len(appNumberCharset)]
	}
	return "APP-" + string(buf), nil
}
