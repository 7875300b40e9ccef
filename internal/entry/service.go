package entry

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookfeel/service/internal/ident"
	"github.com/bookfeel/service/internal/storage"
	"github.com/bookfeel/service/internal/user"
)

// ErrMissingFields is returned when a create request lacks the book title
// or the edit key.
var ErrMissingFields = errors.New("book title and edit key are required")

// ErrForbidden is returned when a write request carries the wrong edit key.
var ErrForbidden = errors.New("invalid edit key")

// CreateInput carries the caller-supplied fields of a new entry. The edit
// key is minted client-side before the call; the service stores it
// verbatim and never returns it to anyone.
type CreateInput struct {
	BookTitle  string
	Tagline    string
	Reflection string
	BookCover  string
	Images     []string
	Privacy    Privacy
	EditKey    string
}

// Service implements the entry operations and their authorization rules.
// Blob cleanup and user-index maintenance are best-effort side effects:
// their failures are logged and never fail the primary operation, because
// the flat store offers no cross-key transaction to make them atomic.
type Service struct {
	repo  *Repository
	users *user.Service
	ids   *ident.Allocator
	blobs storage.Storage // nil when no bucket is configured
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a new entry Service. blobs may be nil, in which case
// cover cleanup is skipped with a warning.
func NewService(repo *Repository, users *user.Service, ids *ident.Allocator, blobs storage.Storage, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		users: users,
		ids:   ids,
		blobs: blobs,
		log:   log,
		now:   time.Now,
	}
}

// Create allocates a slug, persists the record, and links it into the
// caller's ownership index when a user ID is supplied. An unknown user ID
// does not fail the create: the entry is still written and the divergence
// logged, since the creator keeps the edit key client-side.
func (s *Service) Create(ctx context.Context, in CreateInput, callerID string) (*Entry, error) {
	if in.BookTitle == "" || in.EditKey == "" {
		return nil, ErrMissingFields
	}

	slug, err := s.ids.Slug(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate slug: %w", err)
	}

	privacy := in.Privacy
	if privacy != PrivacyPrivate {
		privacy = PrivacyPublic
	}

	e := &Entry{
		Slug:       slug,
		BookTitle:  in.BookTitle,
		Tagline:    in.Tagline,
		Reflection: in.Reflection,
		BookCover:  in.BookCover,
		Images:     in.Images,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
		EditKey:    in.EditKey,
		Privacy:    privacy,
	}

	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}

	if callerID != "" {
		if err := s.users.AddEntry(ctx, callerID, slug, in.EditKey); err != nil {
			s.log.Warn().Err(err).Str("slug", slug).Str("user", callerID).
				Msg("entry created without user linkage")
		}
	}

	if !e.IsPrivate() {
		s.feedAdd(ctx, slug)
	}

	return e.Public(), nil
}

// Get returns the entry with its edit key stripped. Private entries are
// only served to an owning user; a missing record, a missing or unknown
// caller, and a caller who does not own the slug all produce the same
// ErrNotFound so existence is never leaked.
func (s *Service) Get(ctx context.Context, slug, callerID string) (*Entry, error) {
	e, err := s.repo.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !s.canRead(ctx, e, callerID) {
		return nil, ErrNotFound
	}
	return e.Public(), nil
}

// ListSummaries batch-fetches summaries for the requested slugs, silently
// dropping any that do not resolve. No privacy filtering happens here: the
// caller is trusted to only request slugs from its own ownership index.
func (s *Service) ListSummaries(ctx context.Context, slugs []string) ([]Summary, error) {
	summaries := make([]Summary, 0, len(slugs))
	for _, slug := range slugs {
		e, err := s.repo.Get(ctx, slug)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, e.Summary())
	}
	return summaries, nil
}

// Update applies a whitelisted patch after verifying the edit key. When the
// cover changes away from an existing blob (including removal), the old
// blob is deleted from object storage; that cleanup never fails the update.
func (s *Service) Update(ctx context.Context, slug, editKey string, p Patch) (*Entry, error) {
	e, err := s.repo.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !keyMatches(e.EditKey, editKey) {
		return nil, ErrForbidden
	}

	if p.BookCover.Defined && e.BookCover != "" && valueOr(p.BookCover.Value, "") != e.BookCover {
		s.removeBlobs(ctx, slug, e.BookCover)
	}

	if p.BookTitle != nil {
		e.BookTitle = *p.BookTitle
	}
	if p.Tagline != nil {
		e.Tagline = *p.Tagline
	}
	if p.Reflection != nil {
		e.Reflection = *p.Reflection
	}
	if p.Images != nil {
		e.Images = *p.Images
	}
	if p.BookCover.Defined {
		e.BookCover = valueOr(p.BookCover.Value, "")
	}

	wasPrivate := e.IsPrivate()
	if p.Privacy != nil {
		if *p.Privacy == PrivacyPrivate {
			e.Privacy = PrivacyPrivate
		} else {
			e.Privacy = PrivacyPublic
		}
	}

	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}

	if wasPrivate != e.IsPrivate() {
		if e.IsPrivate() {
			s.feedRemove(ctx, slug)
		} else {
			s.feedAdd(ctx, slug)
		}
	}

	return e.Public(), nil
}

// Delete verifies the edit key, cleans up the cover and image blobs, and
// removes the record plus its user-index and feed references. Deleting an
// absent slug is a success, not an error.
func (s *Service) Delete(ctx context.Context, slug, editKey, callerID string) error {
	e, err := s.repo.Get(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !keyMatches(e.EditKey, editKey) {
		return ErrForbidden
	}

	var urls []string
	if e.BookCover != "" {
		urls = append(urls, e.BookCover)
	}
	urls = append(urls, e.Images...)
	s.removeBlobs(ctx, slug, urls...)

	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}

	if callerID != "" {
		if err := s.users.RemoveEntry(ctx, callerID, slug); err != nil {
			s.log.Warn().Err(err).Str("slug", slug).Str("user", callerID).
				Msg("could not unlink entry from user")
		}
	}

	s.feedRemove(ctx, slug)
	return nil
}

// Like increments the entry's like counter and returns the new value.
// The read-modify-write is not atomic; concurrent likes may collapse.
func (s *Service) Like(ctx context.Context, slug, callerID string) (int, error) {
	e, err := s.repo.Get(ctx, slug)
	if err != nil {
		return 0, err
	}
	if !s.canRead(ctx, e, callerID) {
		return 0, ErrNotFound
	}

	e.Likes++
	if err := s.repo.Put(ctx, e); err != nil {
		return 0, err
	}
	return e.Likes, nil
}

// Feed returns summaries for the current public feed, newest first. Slugs
// that no longer resolve or have since gone private are skipped: the index
// is maintained best-effort and may lag the records.
func (s *Service) Feed(ctx context.Context) ([]Summary, error) {
	slugs, err := s.repo.Feed(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(slugs))
	for _, slug := range slugs {
		e, err := s.repo.Get(ctx, slug)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if e.IsPrivate() {
			continue
		}
		summaries = append(summaries, e.Summary())
	}
	return summaries, nil
}

// canRead is the single authorization predicate consulted before every
// read. Every negative outcome looks identical to the caller.
func (s *Service) canRead(ctx context.Context, e *Entry, callerID string) bool {
	if !e.IsPrivate() {
		return true
	}
	if callerID == "" {
		return false
	}
	return s.users.Owns(ctx, callerID, e.Slug)
}

// removeBlobs deletes the objects behind the given public URLs, logging
// any failure without surfacing it. URLs outside the configured store are
// skipped.
func (s *Service) removeBlobs(ctx context.Context, slug string, urls ...string) {
	if len(urls) == 0 {
		return
	}
	if s.blobs == nil {
		s.log.Warn().Str("slug", slug).Msg("object storage not configured, skipping blob cleanup")
		return
	}

	keys := make([]string, 0, len(urls))
	for _, u := range urls {
		key := s.blobs.KeyFromURL(u)
		if key == "" {
			s.log.Warn().Str("slug", slug).Str("url", u).Msg("blob URL outside store, skipping")
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return
	}

	if err := s.blobs.Remove(ctx, keys...); err != nil {
		s.log.Error().Err(err).Str("slug", slug).Msg("blob cleanup failed")
	}
}

func (s *Service) feedAdd(ctx context.Context, slug string) {
	slugs, err := s.repo.Feed(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("feed index read failed")
		return
	}
	for _, existing := range slugs {
		if existing == slug {
			return
		}
	}
	if err := s.repo.PutFeed(ctx, append([]string{slug}, slugs...)); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("feed index update failed")
	}
}

func (s *Service) feedRemove(ctx context.Context, slug string) {
	slugs, err := s.repo.Feed(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("feed index read failed")
		return
	}

	kept := slugs[:0]
	for _, existing := range slugs {
		if existing != slug {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(slugs) {
		return
	}
	if err := s.repo.PutFeed(ctx, kept); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("feed index update failed")
	}
}

// keyMatches compares edit keys in constant time.
func keyMatches(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
