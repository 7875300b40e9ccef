package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bookfeel/service/internal/ident"
)

// ErrNameRequired is returned when a signup has an empty name.
var ErrNameRequired = errors.New("name is required")

// Service contains business logic for account management and the
// ownership index consumed by the entry service.
type Service struct {
	repo *Repository
	ids  *ident.Allocator
	log  zerolog.Logger
}

// NewService creates a new user Service.
func NewService(repo *Repository, ids *ident.Allocator, log zerolog.Logger) *Service {
	return &Service{repo: repo, ids: ids, log: log}
}

// Create registers a new account with an empty ownership index. The
// returned ID is surfaced to the caller exactly once; the system has no way
// to recover it later.
func (s *Service) Create(ctx context.Context, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	id, err := s.ids.UserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate user id: %w", err)
	}

	u := &User{ID: id, Name: name, Entries: []OwnedEntry{}}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Get returns the full user record, including the ownership index with its
// edit keys. Knowing the ID is the sole requirement; the ID is the credential.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}

// AddEntry appends a {slug, editKey} pair to the user's ownership index.
// Read-modify-write without a conditional update; concurrent mutations of
// the same user may lose one of the writes.
func (s *Service) AddEntry(ctx context.Context, userID, slug, editKey string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	u.Entries = append(u.Entries, OwnedEntry{Slug: slug, EditKey: editKey})
	return s.repo.Put(ctx, u)
}

// RemoveEntry drops the pair for slug from the user's ownership index.
// Removing a slug the user does not own is a no-op.
func (s *Service) RemoveEntry(ctx context.Context, userID, slug string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}

	kept := u.Entries[:0]
	for _, e := range u.Entries {
		if e.Slug != slug {
			kept = append(kept, e)
		}
	}
	u.Entries = kept
	return s.repo.Put(ctx, u)
}

// Owns reports whether the user exists and their ownership index contains
// slug. Any failure (unknown user, store error) reads as "does not own";
// callers fold that into a uniform not-found answer.
func (s *Service) Owns(ctx context.Context, userID, slug string) bool {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn().Err(err).Str("user", userID).Msg("ownership check failed")
		}
		return false
	}
	for _, e := range u.Entries {
		if e.Slug == slug {
			return true
		}
	}
	return false
}

// IsNotFound returns true when the error indicates a user was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
