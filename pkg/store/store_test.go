package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/thrivesense/pkg/account"
	"tableflip.dev/thrivesense/pkg/entry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(PathConfig(t.TempDir()))
	require.NoError(t, err)
	return s
}

func mustAccount(t *testing.T, username, email string) *account.Account {
	t.Helper()
	a, err := account.New(username, email, "pw", "")
	require.NoError(t, err)
	return a
}

func TestRegisterAndFind(t *testing.T) {
	ctx := context.Background()
	creds := newTestStore(t).Credentials()

	require.NoError(t, creds.Register(ctx, mustAccount(t, "Ana", "ana@example.com")))

	got, err := creds.FindByEmail(ctx, "ANA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Username)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.NotEmpty(t, got.PasswordHash)

	_, err = creds.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	n, err := creds.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegisterDuplicateKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	creds := newTestStore(t).Credentials()

	require.NoError(t, creds.Register(ctx, mustAccount(t, "Ana", "ana@example.com")))
	err := creds.Register(ctx, mustAccount(t, "Impostor", "ana@example.com"))
	require.ErrorIs(t, err, ErrDuplicateAccount)

	got, err := creds.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Username)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sessions := s.Sessions()

	_, err := sessions.Current(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	a := mustAccount(t, "Ana", "ana@example.com")
	require.NoError(t, sessions.Start(ctx, a))

	got, err := sessions.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Empty(t, got.PasswordHash, "session must not carry the hash")

	other := mustAccount(t, "Bob", "bob@example.com")
	require.NoError(t, sessions.Start(ctx, other))
	got, err = sessions.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.Email)

	require.NoError(t, sessions.End(ctx))
	_, err = sessions.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// ending twice is fine
	require.NoError(t, sessions.End(ctx))
}

func TestSessionSurvivesReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, err := Load(PathConfig(dir))
	require.NoError(t, err)
	require.NoError(t, s1.Sessions().Start(ctx, mustAccount(t, "Ana", "ana@example.com")))

	s2, err := Load(PathConfig(dir))
	require.NoError(t, err)
	got, err := s2.Sessions().Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Username)
}

func testEntry(id string, score float64) *entry.Entry {
	return entry.New(id, time.Now(), "text "+id, entry.Analysis{
		OverallMood: "Calm",
		MoodScore:   score,
		KeyEmotions: []string{"calm", "rested"},
	}, 8, 5)
}

func TestJournalAppendPrepends(t *testing.T) {
	ctx := context.Background()
	journal := newTestStore(t).Journal()

	list, err := journal.List(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, journal.Append(ctx, "ana@example.com", testEntry("1", 5)))
	require.NoError(t, journal.Append(ctx, "ana@example.com", testEntry("2", 6)))
	require.NoError(t, journal.Append(ctx, "ana@example.com", testEntry("3", 7)))

	list, err = journal.List(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "3", list[0].ID)
	assert.Equal(t, "2", list[1].ID)
	assert.Equal(t, "1", list[2].ID)
	assert.Equal(t, []string{"calm", "rested"}, list[0].Analysis.KeyEmotions)
}

func TestJournalPartitionsByAccount(t *testing.T) {
	ctx := context.Background()
	journal := newTestStore(t).Journal()

	require.NoError(t, journal.Append(ctx, "ana@example.com", testEntry("a", 5)))
	require.NoError(t, journal.Append(ctx, "bob@example.com", testEntry("b", 5)))

	ana, err := journal.List(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, ana, 1)
	assert.Equal(t, "a", ana[0].ID)
}

func TestJournalAppendCancelledContextWritesNothing(t *testing.T) {
	journal := newTestStore(t).Journal()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, journal.Append(ctx, "ana@example.com", testEntry("1", 5)))

	list, err := journal.List(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStorageLayout(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := mustAccount(t, "Ana", "ana@example.com")
	require.NoError(t, s.Credentials().Register(ctx, a))
	require.NoError(t, s.Sessions().Start(ctx, a))
	require.NoError(t, s.Journal().Append(ctx, a.Email, testEntry("1", 5)))

	for _, p := range []string{
		keySession,
		keyUsers,
		filepath.Join(journalDir, toFileName("ana@example.com")),
	} {
		_, err := os.Stat(filepath.Join(s.BasePath(), p))
		assert.NoError(t, err, p)
	}
}

func TestKeyTransformRoundTrip(t *testing.T) {
	for _, key := range []string{"session", "users", "journal:ana@example.com"} {
		assert.Equal(t, key, pathToKeyTransform(keyToPathTransform(key)))
	}
}

func TestWatchEmitsJournalChanges(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Journal().Watch(ctx)
	require.NoError(t, err)

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, s.Journal().Append(context.Background(), "ana@example.com", testEntry("1", 5)))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-ch:
			require.True(t, ok, "channel closed early")
			if evt.Type == EventJournalChanged {
				assert.Equal(t, "ana@example.com", evt.Account)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for journal change event")
		}
	}
}
