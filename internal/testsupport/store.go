package testsupport

import (
	"testing"

	"tubelist/internal/config"
	"tubelist/internal/metacache"
	"tubelist/internal/playlist"
	"tubelist/internal/playliststore"
)

// MustOpenStore opens a playliststore.Store rooted at the config save dir.
func MustOpenStore(t testing.TB, cfg *config.Config) *playliststore.Store {
	t.Helper()

	store, err := playliststore.New(cfg.Paths.SaveDir)
	if err != nil {
		t.Fatalf("playliststore.New: %v", err)
	}
	return store
}

// MustOpenCache opens the metadata cache from the config and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *metacache.Cache {
	t.Helper()

	cache, err := metacache.Open(cfg.MetadataCache.Path, cfg.CacheMaxAge())
	if err != nil {
		t.Fatalf("metacache.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Close()
	})
	return cache
}

// MustSave writes p to the store, failing the test on error.
func MustSave(t testing.TB, store *playliststore.Store, p *playlist.Playlist) {
	t.Helper()

	if err := store.Save(p); err != nil {
		t.Fatalf("save %q: %v", p.Title(), err)
	}
}
