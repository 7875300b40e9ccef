// Package user manages user accounts and the index of entries they own.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bookfeel/service/internal/ident"
	"github.com/bookfeel/service/internal/kv"
)

// OwnedEntry is one {slug, editKey} pair in a user's ownership index. The
// edit key here duplicates the one on the entry record itself; the two are
// kept consistent best-effort (the store has no multi-key transactions).
type OwnedEntry struct {
	Slug    string `json:"slug"`
	EditKey string `json:"editKey"`
}

// User represents an account. The numeric ID doubles as the account's only
// credential — there is no password and no recovery channel.
type User struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Entries []OwnedEntry `json:"entries"`
}

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// Repository persists user records in the key-value store under "user_<id>".
type Repository struct {
	store kv.Store
}

// NewRepository creates a new Repository over the given store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// Get fetches a user by ID.
func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	raw, err := r.store.Get(ctx, ident.UserKeyPrefix+id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	u := &User{}
	if err := json.Unmarshal([]byte(raw), u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return u, nil
}

// Put stores the full user record, overwriting any previous version.
func (r *Repository) Put(ctx context.Context, u *User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", u.ID, err)
	}
	if err := r.store.Put(ctx, ident.UserKeyPrefix+u.ID, string(raw)); err != nil {
		return fmt.Errorf("put user %s: %w", u.ID, err)
	}
	return nil
}
