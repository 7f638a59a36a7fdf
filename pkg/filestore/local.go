package filestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects below a root directory and builds URLs from a
// public base, typically a static file route served by the same process.
type LocalStore struct {
	rootPath      string
	publicBaseURL string
}

func NewLocalStore(rootPath string, publicBaseURL string) *LocalStore {
	return &LocalStore{
		rootPath:      rootPath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (s *LocalStore) Upload(ctx context.Context, objectPath string, contentType string, reader io.Reader) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(objectPath))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}

	target := filepath.Join(s.rootPath, cleaned)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write object file: %w", err)
	}

	escaped := make([]string, 0, 4)
	for _, part := range strings.Split(filepath.ToSlash(cleaned), "/") {
		escaped = append(escaped, url.PathEscape(part))
	}
	return s.publicBaseURL + "/" + strings.Join(escaped, "/"), nil
}
