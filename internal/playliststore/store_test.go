package playliststore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"tubelist/internal/playlist"
	"tubelist/internal/playliststore"
	"tubelist/internal/services"
)

func newStore(t *testing.T) *playliststore.Store {
	t.Helper()
	store, err := playliststore.New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return store
}

func TestNewRequiresDirectory(t *testing.T) {
	_, err := playliststore.New("  ")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)

	p := playlist.New("road trip")
	p.AddVideos([]string{"a", "b", "c"})
	provider := playlist.ProviderFunc(func(_ context.Context, ids []string) ([]playlist.Record, error) {
		return []playlist.Record{{ID: "a", Title: "Alpha", PublishedAt: "2021-05-01T10:00:00Z"}, {ID: "b"}, {ID: "c", Title: "Gamma"}}, nil
	})
	if err := playlist.NewReconciler(provider).Reconcile(context.Background(), p); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	p.AddVideos([]string{"d"})

	if err := store.Save(p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, found, err := store.Load("road trip")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !found {
		t.Fatal("expected stored playlist to be found")
	}
	if !reflect.DeepEqual(loaded, p) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", loaded, p)
	}
}

func TestSaveEmptyPlaylistRoundTrip(t *testing.T) {
	store := newStore(t)
	p := playlist.New("empty")
	if err := store.Save(p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, found, err := store.Load("empty")
	if err != nil || !found {
		t.Fatalf("Load = found %v err %v", found, err)
	}
	if !reflect.DeepEqual(loaded, p) {
		t.Fatalf("round trip mismatch: got %#v want %#v", loaded, p)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := newStore(t)
	p := playlist.New("mix")
	p.AddVideos([]string{"a", "b"})
	if err := store.Save(p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	p.RemoveVideos([]string{"a", "b"})
	if err := store.Save(p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, _, err := store.Load("mix")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.NumItems() != 0 {
		t.Fatalf("expected overwritten document to be empty, got %v", loaded.IDs())
	}
}

func TestLoadMissingCreatesEmptyFile(t *testing.T) {
	store := newStore(t)

	p, found, err := store.Load("fresh")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if found || p != nil {
		t.Fatalf("expected not found, got found=%v playlist=%v", found, p)
	}

	info, err := os.Stat(store.Path("fresh"))
	if err != nil {
		t.Fatalf("expected document to be created: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected zero-length document, got %d bytes", info.Size())
	}

	// The empty placeholder is not valid JSON, so the next load is a
	// serialization failure rather than another not-found signal.
	_, _, err = store.Load("fresh")
	if !errors.Is(err, services.ErrSerialization) {
		t.Fatalf("expected serialization error on second load, got %v", err)
	}
	if errors.Is(err, services.ErrIO) {
		t.Fatalf("serialization failure should not be classified as I/O: %v", err)
	}
}

func TestLoadCorruptDocument(t *testing.T) {
	store := newStore(t)
	if err := os.WriteFile(store.Path("broken"), []byte(`{"title": "broken", "videos": [`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := store.Load("broken")
	if !errors.Is(err, services.ErrSerialization) {
		t.Fatalf("expected serialization error, got %v", err)
	}
}

func TestLoadIncompleteShape(t *testing.T) {
	store := newStore(t)
	if err := os.WriteFile(store.Path("partial"), []byte(`{"title":"partial","videos":[]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := store.Load("partial")
	if !errors.Is(err, services.ErrSerialization) {
		t.Fatalf("expected serialization error, got %v", err)
	}
}

func TestLoadMissingDirectoryIsIOError(t *testing.T) {
	store, err := playliststore.New(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, _, err = store.Load("any")
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected I/O error, got %v", err)
	}
}

func TestLoadDirectoryInPlaceOfDocument(t *testing.T) {
	store := newStore(t)
	if err := os.Mkdir(store.Path("odd"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, _, err := store.Load("odd")
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected I/O error, got %v", err)
	}
}

func TestValidateTitle(t *testing.T) {
	for _, title := range []string{"", "  ", ".", "..", "a/b", `a\b`} {
		if err := playliststore.ValidateTitle(title); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", title, err)
		}
	}
	for _, title := range []string{"mix", "Road Trip 2024", "lo-fi_beats"} {
		if err := playliststore.ValidateTitle(title); err != nil {
			t.Fatalf("unexpected error for %q: %v", title, err)
		}
	}
}

func TestExists(t *testing.T) {
	store := newStore(t)
	if ok, err := store.Exists("mix"); err != nil || ok {
		t.Fatalf("Exists on missing = %v %v", ok, err)
	}
	if _, _, err := store.Load("mix"); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if ok, err := store.Exists("mix"); err != nil || ok {
		t.Fatalf("empty placeholder should not count as existing: %v %v", ok, err)
	}
	if err := store.Save(playlist.New("mix")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if ok, err := store.Exists("mix"); err != nil || !ok {
		t.Fatalf("Exists after save = %v %v", ok, err)
	}
}

func TestListSortsCaseInsensitively(t *testing.T) {
	store := newStore(t)
	for _, title := range []string{"beta", "Alpha", "gamma"} {
		if err := store.Save(playlist.New(title)); err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	unlock, err := store.Lock(context.Background(), "beta")
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}
	defer unlock()

	titles, err := store.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if want := []string{"Alpha", "beta", "gamma"}; !reflect.DeepEqual(titles, want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
}

func TestLockIsExclusive(t *testing.T) {
	store := newStore(t)
	unlock, err := store.Lock(context.Background(), "mix")
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}

	other, err := playliststore.New(store.Dir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if _, err := other.Lock(ctx, "mix"); err == nil {
		t.Fatal("expected second lock to fail while the first is held")
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	release, err := other.Lock(context.Background(), "mix")
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	_ = release()
}
