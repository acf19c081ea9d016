package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored player picture.
type UploadResult struct {
	Key      string // object key inside the bucket
	Location string // public URL the scoreboard can render
	ETag     string
}

// FileUploader stores player pictures on an S3-compatible bucket. The
// player service treats a nil uploader as "pictures disabled" and registers
// players without one.
type FileUploader interface {
	// Upload streams the picture under the given key, replacing any
	// previous object with that key.
	Upload(ctx context.Context, key, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	// GetPublicURL resolves a stored key against the configured public
	// base URL. An empty key resolves to an empty URL.
	GetPublicURL(key string) string
}
