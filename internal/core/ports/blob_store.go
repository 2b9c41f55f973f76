package ports

import (
	"context"
	"io"
)

// BlobStore abstracts file storage for receipts and auction attachments.
// Save returns an opaque handle/URL usable in API responses.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Remove(ctx context.Context, key string) error
	// RemovePrefix purges every blob under prefix. Callers treat failures as
	// best-effort; it must never abort the surrounding business operation.
	RemovePrefix(ctx context.Context, prefix string) error
}
