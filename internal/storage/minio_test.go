package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURLAndKeyFromURLRoundTrip(t *testing.T) {
	s := &MinioStorage{publicBase: "https://cdn.example/book-assets"}

	u := s.PublicURL("abc.jpg")
	assert.Equal(t, "https://cdn.example/book-assets/abc.jpg", u)
	assert.Equal(t, "abc.jpg", s.KeyFromURL(u))
}

func TestKeyFromURL_OutsideBase(t *testing.T) {
	s := &MinioStorage{publicBase: "https://cdn.example/book-assets"}

	assert.Empty(t, s.KeyFromURL("https://elsewhere.example/abc.jpg"))
	assert.Empty(t, s.KeyFromURL("https://cdn.example/book-assets/"))
}

func TestPublicReadPolicy(t *testing.T) {
	p := publicReadPolicy("book-assets")
	assert.Contains(t, p, `"arn:aws:s3:::book-assets/*"`)
	assert.Contains(t, p, `"s3:GetObject"`)
}
