// Package upload brokers direct client-to-storage cover uploads. It never
// touches blob contents itself: it hands out a short-lived presigned PUT
// URL plus the public URL the blob will have once the client uploads it.
package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookfeel/service/internal/storage"
)

// urlTTL bounds how long a client may delay the upload.
const urlTTL = 360 * time.Second

// ErrNotConfigured is returned when no storage bucket is configured.
var ErrNotConfigured = errors.New("storage bucket is not configured")

// UploadURL pairs a presigned PUT URL with the future public URL.
type UploadURL struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

// Service issues presigned upload URLs.
type Service struct {
	blobs storage.Storage // nil when no bucket is configured
}

// NewService creates a new upload Service. blobs may be nil.
func NewService(blobs storage.Storage) *Service {
	return &Service{blobs: blobs}
}

// RequestUploadURL derives a unique storage key from a fresh UUID plus the
// sanitized extension of filename, and presigns a PUT for it scoped to
// contentType.
func (s *Service) RequestUploadURL(ctx context.Context, filename, contentType string) (*UploadURL, error) {
	if s.blobs == nil {
		return nil, ErrNotConfigured
	}

	key := uuid.NewString() + "." + sanitizeExtension(filename)

	uploadURL, err := s.blobs.PresignPut(ctx, key, contentType, urlTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &UploadURL{
		UploadURL: uploadURL,
		PublicURL: s.blobs.PublicURL(key),
	}, nil
}

// sanitizeExtension extracts the extension of filename, lowercases it, and
// strips everything outside [a-z0-9]. Files with no usable extension get
// "jpg".
func sanitizeExtension(filename string) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i+1:]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(ext) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "jpg"
	}
	return b.String()
}
