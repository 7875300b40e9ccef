// Package ident allocates collision-checked random identifiers (entry
// slugs and user IDs) against the key-value store.
package ident

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/bookfeel/service/internal/kv"
)

const (
	slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	slugLength   = 12
	suffixLength = 4

	userIDLength = 10

	maxAttempts = 20
)

// UserKeyPrefix namespaces user records in the key-value store. Entry
// records are stored under the bare slug.
const UserKeyPrefix = "user_"

// ErrExhausted is returned when a unique user ID could not be found within
// the attempt budget. A signup is failed outright rather than degraded: the
// numeric ID is the only credential ever shown to the user, so handing out
// a longer or suffixed one is worse than asking them to retry.
var ErrExhausted = errors.New("identifier space exhausted")

// Allocator generates identifiers guaranteed absent from the store at the
// moment of the probe.
type Allocator struct {
	store kv.Store
}

// New creates an Allocator probing the given store.
func New(store kv.Store) *Allocator {
	return &Allocator{store: store}
}

// Slug returns a fresh 12-character lowercase alphanumeric entry slug.
// After the attempt budget is spent it falls back to appending a short
// random suffix, accepting a longer slug over a failed request.
func (a *Allocator) Slug(ctx context.Context) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		slug := randomString(slugLength)
		free, err := a.free(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("probe slug: %w", err)
		}
		if free {
			return slug, nil
		}
	}
	// Highly saturated namespace; add entropy instead of failing.
	return randomString(slugLength) + "-" + randomString(suffixLength), nil
}

// UserID returns a fresh 10-digit numeric user ID, or ErrExhausted when
// the attempt budget runs out.
func (a *Allocator) UserID(ctx context.Context) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id := randomDigits(userIDLength)
		free, err := a.free(ctx, UserKeyPrefix+id)
		if err != nil {
			return "", fmt.Errorf("probe user id: %w", err)
		}
		if free {
			return id, nil
		}
	}
	return "", ErrExhausted
}

func (a *Allocator) free(ctx context.Context, key string) (bool, error) {
	_, err := a.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func randomString(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(slugAlphabet[rand.Intn(len(slugAlphabet))])
	}
	return b.String()
}

func randomDigits(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}
