package helper

import (
	"regexp"
	"testing"
)

func TestNewApplicationNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^APP-[A-Z0-9]{10}$`)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		n, err := NewApplicationNumber()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !re.MatchString(n) {
			t.Fatalf("bad format: %q", n)
		}
		seen[n] = true
	}
	if len(seen) < 190 {
		t.Fatalf("suspiciously many collisions: %d unique of 200", len(seen))
	}
}
