// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO,
// Cloudflare R2, AWS S3).
package storage

import (
	"context"
	"time"
)

// Storage is the interface for brokering and cleaning up blobs. The service
// never writes blob contents itself; clients upload directly using presigned
// URLs and the service only stores the resulting public URLs.
type Storage interface {
	// PresignPut returns a time-boxed URL that allows a single direct PUT
	// of an object with the given content type under key.
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	// Remove deletes the given objects in one batch. A missing object is
	// not an error.
	Remove(ctx context.Context, keys ...string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
	// KeyFromURL recovers the object key from a public URL previously
	// produced by PublicURL. It returns "" when the URL does not point
	// into this store.
	KeyFromURL(publicURL string) string
}
