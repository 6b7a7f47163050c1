package storage

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/proofreader/internal/models"
	"github.com/lehigh-university-libraries/proofreader/internal/quality"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBadgerTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func stores(t *testing.T) map[string]PageStore {
	return map[string]PageStore{
		"memory": NewMemoryStore(),
		"badger": newBadgerTestStore(t),
	}
}

func TestPageStoreCommit(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			page, err := store.Get(ctx, "LoremIpsum.djvu/2")
			require.NoError(t, err)
			assert.Nil(t, page)

			first := &models.PageRecord{
				Title:      "LoremIpsum.djvu/2",
				Body:       "Lorem ipsum",
				Quality:    quality.State{Level: quality.Proofread, User: "Alice"},
				RevisionID: "rev-1",
			}
			require.NoError(t, store.Commit(ctx, first, ""))

			// a second creation against the empty revision loses
			err = store.Commit(ctx, &models.PageRecord{Title: "LoremIpsum.djvu/2", RevisionID: "rev-x"}, "")
			assert.ErrorIs(t, err, ErrRevisionMismatch)

			second := *first
			second.Body = "Lorem ipsum dolor"
			second.RevisionID = "rev-2"
			require.NoError(t, store.Commit(ctx, &second, "rev-1"))

			err = store.Commit(ctx, &models.PageRecord{Title: "LoremIpsum.djvu/2", RevisionID: "rev-3"}, "rev-1")
			assert.ErrorIs(t, err, ErrRevisionMismatch)

			page, err = store.Get(ctx, "LoremIpsum.djvu/2")
			require.NoError(t, err)
			require.NotNil(t, page)
			assert.Equal(t, "Lorem ipsum dolor", page.Body)
			assert.Equal(t, "rev-2", page.RevisionID)
			assert.Equal(t, quality.Proofread, page.Quality.Level)
			assert.Equal(t, "Alice", page.Quality.User)
		})
	}
}

func TestPageStoreList(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, title := range []string{"B.djvu/1", "A.djvu/2", "A.djvu/1"} {
				require.NoError(t, store.Commit(ctx, &models.PageRecord{Title: title, RevisionID: "r"}, ""))
			}

			pages, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, pages, 3)
			assert.Equal(t, "A.djvu/1", pages[0].Title)
			assert.Equal(t, "A.djvu/2", pages[1].Title)
			assert.Equal(t, "B.djvu/1", pages[2].Title)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Commit(ctx, &models.PageRecord{Title: "P", Body: "a", RevisionID: "r"}, ""))

	page, err := store.Get(ctx, "P")
	require.NoError(t, err)
	page.Body = "changed"

	again, err := store.Get(ctx, "P")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Body)
}

func TestMemoryStoreConcurrentCommits(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Commit(ctx, &models.PageRecord{Title: "P", RevisionID: "r"}, "")
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestBadgerStorePersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewBadgerStore(dir, discardLogger())
	require.NoError(t, err)
	require.NoError(t, store.Commit(ctx, &models.PageRecord{Title: "P", Body: "kept", RevisionID: "r"}, ""))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	reopened, err := NewBadgerStore(dir, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	page, err := reopened.Get(ctx, "P")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "kept", page.Body)
}

func TestOpen(t *testing.T) {
	store, err := Open("memory", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open("badger", t.TempDir(), discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &BadgerStore{}, store)
	require.NoError(t, store.Close())

	_, err = Open("redis", "", nil)
	assert.Error(t, err)
}

func TestBadgerLoggerDoesNotPanic(t *testing.T) {
	l := newBadgerLogger(discardLogger())
	assert.NotPanics(t, func() { l.Errorf("error %s", "test") })
	assert.NotPanics(t, func() { l.Warningf("warning %d", 42) })
	assert.NotPanics(t, func() { l.Infof("info %v", true) })
	assert.NotPanics(t, func() { l.Debugf("debug") })
}
