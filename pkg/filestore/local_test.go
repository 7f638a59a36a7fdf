package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreUpload(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "http://localhost:3231/files/")

	url, err := store.Upload(context.Background(), "infractions/abc-123/photo.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("unexpected upload error: %v", err)
	}
	if url != "http://localhost:3231/files/infractions/abc-123/photo.jpg" {
		t.Errorf("unexpected public url: %q", url)
	}

	content, err := os.ReadFile(filepath.Join(root, "infractions", "abc-123", "photo.jpg"))
	if err != nil {
		t.Fatalf("expected object file to exist: %v", err)
	}
	if string(content) != "jpeg-bytes" {
		t.Errorf("unexpected object content: %q", content)
	}
}

func TestLocalStoreRejectsEscapingPaths(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:3231/files")

	tests := []string{
		"../outside.jpg",
		"../../etc/passwd",
		"/absolute.jpg",
	}
	for _, objectPath := range tests {
		if _, err := store.Upload(context.Background(), objectPath, "image/jpeg", strings.NewReader("x")); err == nil {
			t.Errorf("expected upload of %q to be rejected", objectPath)
		}
	}
}
