package entry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bookfeel/service/internal/kv"
)

// feedKey is the store key holding the public-feed index: a JSON array of
// public slugs, newest first.
const feedKey = "feed"

// ErrNotFound is returned when an entry does not exist — or when the caller
// is not entitled to know whether it exists.
var ErrNotFound = errors.New("entry not found")

// Repository persists entry records in the key-value store under their slug.
type Repository struct {
	store kv.Store
}

// NewRepository creates a new Repository over the given store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// Get fetches the full entry record, edit key included.
func (r *Repository) Get(ctx context.Context, slug string) (*Entry, error) {
	raw, err := r.store.Get(ctx, slug)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", slug, err)
	}

	e := &Entry{}
	if err := json.Unmarshal([]byte(raw), e); err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", slug, err)
	}
	return e, nil
}

// Put stores the full entry record, overwriting any previous version.
func (r *Repository) Put(ctx context.Context, e *Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry %s: %w", e.Slug, err)
	}
	if err := r.store.Put(ctx, e.Slug, string(raw)); err != nil {
		return fmt.Errorf("put entry %s: %w", e.Slug, err)
	}
	return nil
}

// Delete removes the entry record. Deleting an absent slug succeeds.
func (r *Repository) Delete(ctx context.Context, slug string) error {
	if err := r.store.Delete(ctx, slug); err != nil {
		return fmt.Errorf("delete entry %s: %w", slug, err)
	}
	return nil
}

// Feed returns the public-feed slug index, empty when none exists yet.
func (r *Repository) Feed(ctx context.Context) ([]string, error) {
	raw, err := r.store.Get(ctx, feedKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get feed index: %w", err)
	}

	var slugs []string
	if err := json.Unmarshal([]byte(raw), &slugs); err != nil {
		return nil, fmt.Errorf("decode feed index: %w", err)
	}
	return slugs, nil
}

// PutFeed overwrites the public-feed slug index.
func (r *Repository) PutFeed(ctx context.Context, slugs []string) error {
	raw, err := json.Marshal(slugs)
	if err != nil {
		return fmt.Errorf("encode feed index: %w", err)
	}
	if err := r.store.Put(ctx, feedKey, string(raw)); err != nil {
		return fmt.Errorf("put feed index: %w", err)
	}
	return nil
}
