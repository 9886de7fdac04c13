package core

import (
	"context"
	"io"
)

// MediaStore is any object storage that can serve uploaded files.
type MediaStore interface {
	// Upload stores r under folder/key, replacing any existing object with the same key,
	// and returns the URL the object is served from.
	Upload(ctx context.Context, folder, key, contentType string, r io.Reader) (string, error)
}
