package entry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfeel/service/internal/ident"
	"github.com/bookfeel/service/internal/kv"
	"github.com/bookfeel/service/internal/user"
)

const fakePublicBase = "https://cdn.example"

// fakeStorage records presign and remove calls instead of talking to a bucket.
type fakeStorage struct {
	removed    [][]string
	failRemove bool
}

func (f *fakeStorage) PresignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeStorage) Remove(_ context.Context, keys ...string) error {
	f.removed = append(f.removed, keys)
	if f.failRemove {
		return errors.New("bucket unreachable")
	}
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return fakePublicBase + "/" + key
}

func (f *fakeStorage) KeyFromURL(publicURL string) string {
	key := strings.TrimPrefix(publicURL, fakePublicBase+"/")
	if key == publicURL || key == "" {
		return ""
	}
	return key
}

type testEnv struct {
	svc   *Service
	users *user.Service
	blobs *fakeStorage
}

func newTestEnv() *testEnv {
	store := kv.NewMemory()
	ids := ident.New(store)
	users := user.NewService(user.NewRepository(store), ids, zerolog.Nop())
	blobs := &fakeStorage{}
	svc := NewService(NewRepository(store), users, ids, blobs, zerolog.Nop())
	return &testEnv{svc: svc, users: users, blobs: blobs}
}

func TestCreate_RequiresTitleAndEditKey(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.Create(ctx, CreateInput{EditKey: "secret"}, "")
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = env.svc.Create(ctx, CreateInput{BookTitle: "Solaris"}, "")
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateGet_RoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.Create(ctx, CreateInput{
		BookTitle:  "Solaris",
		Tagline:    "an ocean that thinks",
		Reflection: "still thinking about the mimoids",
		EditKey:    "secret",
	}, "")
	require.NoError(t, err)
	assert.Regexp(t, `^[a-z0-9]{12}$`, created.Slug)
	assert.Empty(t, created.EditKey)

	got, err := env.svc.Get(ctx, created.Slug, "")
	require.NoError(t, err)
	assert.Equal(t, "Solaris", got.BookTitle)
	assert.Equal(t, "an ocean that thinks", got.Tagline)
	assert.Equal(t, PrivacyPublic, got.Privacy)
	assert.Empty(t, got.EditKey)

	_, err = time.Parse(time.RFC3339, got.CreatedAt)
	assert.NoError(t, err)
}

func TestGet_UnknownSlug(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Get(context.Background(), "nosuchslug00", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGet_PrivateEntryMasksExistence(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	owner, err := env.users.Create(ctx, "ada")
	require.NoError(t, err)
	stranger, err := env.users.Create(ctx, "bob")
	require.NoError(t, err)

	created, err := env.svc.Create(ctx, CreateInput{
		BookTitle: "Solaris",
		EditKey:   "secret",
		Privacy:   PrivacyPrivate,
	}, owner.ID)
	require.NoError(t, err)

	// Owner reads the full record (minus edit key).
	got, err := env.svc.Get(ctx, created.Slug, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solaris", got.BookTitle)
	assert.Empty(t, got.EditKey)

	// No caller, unknown caller, and non-owning caller are indistinguishable.
	_, errNone := env.svc.Get(ctx, created.Slug, "")
	_, errUnknown := env.svc.Get(ctx, created.Slug, "0000000000")
	_, errStranger := env.svc.Get(ctx, created.Slug, stranger.ID)
	assert.ErrorIs(t, errNone, ErrNotFound)
	assert.ErrorIs(t, errUnknown, ErrNotFound)
	assert.ErrorIs(t, errStranger, ErrNotFound)
}

func TestCreate_LinksEntryToUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	u, err := env.users.Create(ctx, "ada")
	require.NoError(t, err)

	created, err := env.svc.Create(ctx, CreateInput{BookTitle: "Solaris", EditKey: "secret"}, u.ID)
	require.NoError(t, err)

	got, err := env.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []user.OwnedEntry{{Slug: created.Slug, EditKey: "secret"}}, got.Entries)

	require.NoError(t, env.svc.Delete(ctx, created.Slug, "secret", u.ID))

	got, err = env.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
}

func TestCreate_UnknownUserToleratedAsOrphan(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.Create(ctx, CreateInput{BookTitle: "Solaris", EditKey: "secret"}, "0000000000")
	require.NoError(t, err)

	_, err = env.svc.Get(ctx, created.Slug, "")
	assert.NoError(t, err)
}

func TestUpdate_RoundTripAndImmutables(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.Create(ctx, CreateInput{
		BookTitle: "X",
		Tagline:   "first",
		EditKey:   "secret",
	}, "")
	require.NoError(t, err)

	title := "Y"
	updated, err := env.svc.Update(ctx, created.Slug, "secret", Patch{BookTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "Y", updated.BookTitle)
	assert.Equal(t, "first", updated.Tagline)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Empty(t, updated.EditKey)

	got, err := env.svc.Get(ctx, created.Slug, "")
	require.NoError(t, err)
	assert.Equal(t, "Y", got.BookTitle)
	assert.Equal(t, "first", got.Tagline)
}

func TestUpdate_WrongEditKey(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.Create(ctx, CreateInput{BookTitle: "X", EditKey: "secret"}, "")
	require.NoError(t, err)

	title := "Y"
	_, err = env.svc.Update(ctx, created.Slug, "wrong", Patch{BookTitle: &title})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdate_CoverTriState(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	oldCover := fakePublicBase + "/old-cover.jpg"
	created, err := env.svc.Create(ctx, CreateInput{
		BookTitle: "X",
		BookCover: oldCover,
		EditKey:   "secret",
	}, "")
	require.NoError(t, err)

	// Omitted: cover untouched, no storage call.
	title := "Y"
	updated, err := env.svc.Update(ctx, created.Slug, "secret", Patch{BookTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, oldCover, updated.BookCover)
	assert.Empty(t, env.blobs.removed)

	// Explicit null: cover removed, old blob deleted.
	updated, err = env.svc.Update(ctx, created.Slug, "secret", Patch{
		BookCover: Nullable{Defined: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.BookCover)
	require.Len(t, env.blobs.removed, 1)
	assert.Equal(t, []string{"old-cover.jpg"}, env.blobs.removed[0])

	got, err := env.svc.Get(ctx, created.Slug, "")
	require.NoError(t, err)
	assert.Empty(t, got.BookCover)
}

func TestUpdate_CoverReplacementDeletesOldBlob(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	oldCover := fakePublicBase + "/old-cover.jpg"
	newCover := fakePublicBase + "/new-cover.jpg"
	created, err := env.svc.Create(ctx, CreateInput{BookTitle: "X", BookCover: oldCover, EditKey: "secret"}, "")
	require.NoError(t, err)

	updated, err := env.svc.Update(ctx, created.Slug, "secret", Patch{
		BookCover: Nullable{Defined: true, Value: &newCover},
	})
	require.NoError(t, err)
	assert.Equal(t, newCover, updated.BookCover)
	require.Len(t, env.blobs.removed, 1)
	assert.Equal(t, []string{"old-cover.jpg"}, env.blobs.removed[0])
}

func TestUpdate_BlobCleanupFailureDoesNotFailUpdate(t *testing.T) {
	env := newTestEnv()
	env.blobs.failRemove = true
	ctx := context.Background()

	oldCover := fakePublicBase + "/old-cover.jpg"
	created, err := env.svc.Create(ctx, CreateInput{BookTitle: "X", BookCover: oldCover, EditKey: "secret"}, "")
	require.NoError(t, err)

	updated, err := env.svc.Update(ctx, created.Slug, "secret", Patch{
		BookCover: Nullable{Defined: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.BookCover)
}

func TestDelete_IsIdempotentAndCleansBlobs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.NoError(t, env.svc.Delete(ctx, "neverexisted", "whatever", ""))

	created, err := env.svc.Create(ctx, CreateInput{
		BookTitle: "X",
		BookCover: fakePublicBase + "/cover.jpg",
		Images:    []string{fakePublicBase + "/img-1.png", fakePublicBase + "/img-2.png"},
		EditKey:   "secret",
	}, "")
	require.NoError(t, err)

	require.ErrorIs(t, env.svc.Delete(ctx, created.Slug, "wrong", ""), ErrForbidden)

	require.NoError(t, env.svc.Delete(ctx, created.Slug, "secret", ""))
	require.Len(t, env.blobs.removed, 1)
	assert.Equal(t, []string{"cover.jpg", "img-1.png", "img-2.png"}, env.blobs.removed[0])

	_, err = env.svc.Get(ctx, created.Slug, "")
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete of the now-absent slug still succeeds.
	require.NoError(t, env.svc.Delete(ctx, created.Slug, "secret", ""))
}

func TestListSummaries_DropsMisses(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a, err := env.svc.Create(ctx, CreateInput{BookTitle: "A", Tagline: "ta", EditKey: "ka"}, "")
	require.NoError(t, err)
	b, err := env.svc.Create(ctx, CreateInput{BookTitle: "B", Tagline: "tb", EditKey: "kb", Privacy: PrivacyPrivate}, "")
	require.NoError(t, err)

	summaries, err := env.svc.ListSummaries(ctx, []string{a.Slug, "missing00000", b.Slug})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, a.Slug, summaries[0].Slug)
	assert.Equal(t, "A", summaries[0].BookTitle)
	assert.Equal(t, "ta", summaries[0].Tagline)
	assert.Equal(t, a.CreatedAt, summaries[0].CreatedAt)
	assert.Equal(t, PrivacyPublic, summaries[0].Privacy)

	assert.Equal(t, b.Slug, summaries[1].Slug)
	assert.Equal(t, PrivacyPrivate, summaries[1].Privacy)
}

func TestFeed_TracksPublicEntriesNewestFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.svc.Create(ctx, CreateInput{BookTitle: "First", EditKey: "k1"}, "")
	require.NoError(t, err)
	second, err := env.svc.Create(ctx, CreateInput{BookTitle: "Second", EditKey: "k2"}, "")
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, CreateInput{BookTitle: "Hidden", EditKey: "k3", Privacy: PrivacyPrivate}, "")
	require.NoError(t, err)

	feed, err := env.svc.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, second.Slug, feed[0].Slug)
	assert.Equal(t, first.Slug, feed[1].Slug)
}

func TestFeed_FollowsPrivacyTransitions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.Create(ctx, CreateInput{BookTitle: "X", EditKey: "secret"}, "")
	require.NoError(t, err)

	private := PrivacyPrivate
	_, err = env.svc.Update(ctx, created.Slug, "secret", Patch{Privacy: &private})
	require.NoError(t, err)

	feed, err := env.svc.Feed(ctx)
	require.NoError(t, err)
	assert.Empty(t, feed)

	public := PrivacyPublic
	_, err = env.svc.Update(ctx, created.Slug, "secret", Patch{Privacy: &public})
	require.NoError(t, err)

	feed, err = env.svc.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, created.Slug, feed[0].Slug)
}

func TestFeed_DeletedEntriesDropOut(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.Create(ctx, CreateInput{BookTitle: "X", EditKey: "secret"}, "")
	require.NoError(t, err)
	require.NoError(t, env.svc.Delete(ctx, created.Slug, "secret", ""))

	feed, err := env.svc.Feed(ctx)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestLike_IncrementsAndMasksPrivate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.Create(ctx, CreateInput{BookTitle: "X", EditKey: "secret"}, "")
	require.NoError(t, err)

	likes, err := env.svc.Like(ctx, created.Slug, "")
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = env.svc.Like(ctx, created.Slug, "")
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	owner, err := env.users.Create(ctx, "ada")
	require.NoError(t, err)
	hidden, err := env.svc.Create(ctx, CreateInput{BookTitle: "H", EditKey: "s", Privacy: PrivacyPrivate}, owner.ID)
	require.NoError(t, err)

	_, err = env.svc.Like(ctx, hidden.Slug, "")
	assert.ErrorIs(t, err, ErrNotFound)

	likes, err = env.svc.Like(ctx, hidden.Slug, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
}
