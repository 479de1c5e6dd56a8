package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/safak4545x/swifttube/infrastructure/cache"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.NewStore(t.TempDir(), 8)
	assert.NoError(t, err)
	return store
}

func TestStoreSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	key := cache.Key("search", "q=lofi", "hl=en", "gl=US")

	err := cache.Set(store, cache.NamespaceResults, key, []string{"a", "b"}, time.Minute)
	assert.NoError(t, err)

	got := cache.Get[[]string](store, cache.NamespaceResults, key)
	assert.NotNil(t, got)
	assert.Equal(t, []string{"a", "b"}, *got)
}

func TestStoreSetIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	key := cache.Key("search", "q=lofi")

	assert.NoError(t, cache.Set(store, cache.NamespaceResults, key, "first", time.Minute))
	assert.NoError(t, cache.Set(store, cache.NamespaceResults, key, "second", time.Minute))

	got := cache.Get[string](store, cache.NamespaceResults, key)
	assert.NotNil(t, got)
	assert.Equal(t, "second", *got)
}

func TestStoreExpiredEntryIsAMiss(t *testing.T) {
	store := newTestStore(t)
	key := cache.Key("search", "q=old")

	assert.NoError(t, cache.Set(store, cache.NamespaceResults, key, "value", -time.Second))
	assert.Nil(t, cache.Get[string](store, cache.NamespaceResults, key))
}

func TestStoreDiskSurvivesProcessRestart(t *testing.T) {
	root := t.TempDir()
	key := cache.Key("search", "q=persist")

	store, err := cache.NewStore(root, 8)
	assert.NoError(t, err)
	assert.NoError(t, cache.Set(store, cache.NamespaceResults, key, 42, time.Minute))

	// A fresh store over the same root has an empty memory tier; the hit
	// must come from disk.
	reopened, err := cache.NewStore(root, 8)
	assert.NoError(t, err)
	got := cache.Get[int](reopened, cache.NamespaceResults, key)
	assert.NotNil(t, got)
	assert.Equal(t, 42, *got)
}

func TestStoreCorruptEntryIsAMissAndDropped(t *testing.T) {
	root := t.TempDir()
	store, err := cache.NewStore(root, 8)
	assert.NoError(t, err)

	dir := filepath.Join(root, "results")
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	key := cache.Key("search", "q=corrupt")
	assert.NoError(t, cache.Set(store, cache.NamespaceResults, key, "value", time.Minute))

	entries, err = os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	path := filepath.Join(dir, entries[0].Name())
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	// Reopen so the memory tier cannot mask the corrupt file.
	reopened, err := cache.NewStore(root, 8)
	assert.NoError(t, err)
	assert.Nil(t, cache.Get[string](reopened, cache.NamespaceResults, key))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	key := cache.Key("search", "q=gone")

	assert.NoError(t, cache.Set(store, cache.NamespaceResults, key, "value", time.Minute))
	store.Delete(cache.NamespaceResults, key)
	assert.Nil(t, cache.Get[string](store, cache.NamespaceResults, key))
}

func TestStoreClearEmptiesEveryNamespace(t *testing.T) {
	root := t.TempDir()
	store, err := cache.NewStore(root, 8)
	assert.NoError(t, err)

	assert.NoError(t, cache.Set(store, cache.NamespaceResults, cache.Key("search", "q=a"), "a", time.Minute))
	assert.NoError(t, store.Set(cache.NamespaceAssets, cache.Key("thumb", "id=x"), []byte(`"img"`), time.Minute))

	assert.NoError(t, store.Clear())

	assert.Nil(t, cache.Get[string](store, cache.NamespaceResults, cache.Key("search", "q=a")))
	assert.Nil(t, store.Get(cache.NamespaceAssets, cache.Key("thumb", "id=x")))

	// Namespace directories are recreated so subsequent writes still land.
	assert.NoError(t, cache.Set(store, cache.NamespaceResults, cache.Key("search", "q=b"), "b", time.Minute))
}

func TestKeyIsDeterministicAndOrderSensitive(t *testing.T) {
	a := cache.Key("search", "q=lofi", "hl=en")
	b := cache.Key("search", "q=lofi", "hl=en")
	c := cache.Key("search", "hl=en", "q=lofi")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
