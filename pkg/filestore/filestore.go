// Package filestore persists offender photos and QR captures and returns the
// public URL under which they can be fetched back. Two backends exist: a
// local directory for development and an S3-compatible bucket for
// deployments.
package filestore

import (
	"context"
	"io"
)

// Store writes one object and returns its public URL. The objectPath is a
// slash-separated path below the store root, e.g.
// "infractions/<uuid>/photo.jpg".
type Store interface {
	Upload(ctx context.Context, objectPath string, contentType string, reader io.Reader) (string, error)
}
