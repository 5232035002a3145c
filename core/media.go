package core

import (
	"context"
	"io"
)

// MediaStore is any service that can hold uploaded binary blobs (room videos)
// keyed by filename. Blobs are not versioned; Save overwrites.
type MediaStore interface {
	Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, filename string) error
	Exists(ctx context.Context, filename string) (bool, error)
	// List returns all stored filenames; used by the startup reconciliation scan.
	List(ctx context.Context) ([]string, error)
}
