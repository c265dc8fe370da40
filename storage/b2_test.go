package storage

import (
	"context"
	"testing"
)

func TestDownloadURL(t *testing.T) {
	got := downloadURL("https://f002.backblazeb2.com", "gamji-uploads", "awards/01J0EXAMPLE.png")
	want := "https://f002.backblazeb2.com/file/gamji-uploads/awards/01J0EXAMPLE.png"
	if got != want {
		t.Fatalf("downloadURL = %q, want %q", got, want)
	}
}

func TestDisabledStore(t *testing.T) {
	var d Disabled

	if _, err := d.Upload(context.Background(), DirAwards, "x.png", nil); err != ErrDisabled {
		t.Fatalf("Upload err = %v, want %v", err, ErrDisabled)
	}
	if err := d.Delete(context.Background(), "awards/x.png"); err != nil {
		t.Fatalf("Delete err = %v, want nil", err)
	}
	if got := d.URL("awards/x.png"); got != "" {
		t.Fatalf("URL = %q, want empty", got)
	}
}
