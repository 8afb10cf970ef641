package playlist_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"tubelist/internal/playlist"
	"tubelist/internal/services"
)

type staticProvider []playlist.Record

func (s staticProvider) FetchVideos(context.Context, []string) ([]playlist.Record, error) {
	out := make([]playlist.Record, len(s))
	copy(out, s)
	return out, nil
}

type recordingProvider struct {
	calls   [][]string
	records []playlist.Record
	err     error
}

func (r *recordingProvider) FetchVideos(_ context.Context, ids []string) ([]playlist.Record, error) {
	r.calls = append(r.calls, append([]string(nil), ids...))
	return r.records, r.err
}

func TestReconcileFetchesPendingVideos(t *testing.T) {
	p := playlist.New("test")
	p.AddVideos([]string{"dQw4w9WgXcQ"})

	provider := &recordingProvider{records: []playlist.Record{{
		ID:          "dQw4w9WgXcQ",
		Title:       "Rick Astley - Never Gonna Give You Up (Official Music Video)",
		PublishedAt: "2009-10-25T06:57:33Z",
	}}}
	if err := playlist.NewReconciler(provider).Reconcile(context.Background(), p); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if len(p.Pending()) != 0 {
		t.Fatalf("expected no pending videos, got %v", p.Pending())
	}
	v := p.Videos()[0]
	if v.Title != "Rick Astley - Never Gonna Give You Up (Official Music Video)" {
		t.Fatalf("unexpected title %q", v.Title)
	}
	if v.URL() != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("unexpected url %q", v.URL())
	}
	if len(provider.calls) != 1 || !reflect.DeepEqual(provider.calls[0], []string{"dQw4w9WgXcQ"}) {
		t.Fatalf("unexpected provider calls %v", provider.calls)
	}
}

func TestReconcileSkipsProviderWhenNothingPending(t *testing.T) {
	p := playlist.New("test")
	provider := &recordingProvider{err: errors.New("should not be called")}
	if err := playlist.NewReconciler(provider).Reconcile(context.Background(), p); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if len(provider.calls) != 0 {
		t.Fatalf("provider called for empty request set: %v", provider.calls)
	}
}

func TestReconcileMergeOrder(t *testing.T) {
	p := playlist.New("test")
	p.AddVideos([]string{"a", "b"})
	first := &recordingProvider{records: []playlist.Record{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}
	if err := playlist.NewReconciler(first).Reconcile(context.Background(), p); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	p.AddVideos([]string{"c", "d"})
	second := &recordingProvider{records: []playlist.Record{{ID: "d", Title: "D"}, {ID: "c"}}}
	if err := playlist.NewReconciler(second).Reconcile(context.Background(), p); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if !reflect.DeepEqual(second.calls, [][]string{{"c", "d"}}) {
		t.Fatalf("expected only pending ids requested, got %v", second.calls)
	}
	want := []playlist.Video{
		{ID: "a", Title: "A", Fetched: true},
		{ID: "b", Title: "B", Fetched: true},
		{ID: "d", Title: "D", Fetched: true},
		{ID: "c", Fetched: true},
	}
	if got := p.Videos(); !reflect.DeepEqual(got, want) {
		t.Fatalf("videos = %#v, want %#v", got, want)
	}
	assertConsistent(t, p)
}

func TestReconcileIncompleteLeavesPlaylistUntouched(t *testing.T) {
	p := playlist.New("test")
	p.AddVideos([]string{"a"})
	if err := playlist.NewReconciler(staticProvider{{ID: "a", Title: "A"}}).Reconcile(context.Background(), p); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	p.AddVideos([]string{"b", "c", "d"})

	before, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	provider := staticProvider{{ID: "b"}, {ID: "d"}}
	err = playlist.NewReconciler(provider).Reconcile(context.Background(), p)
	if err == nil {
		t.Fatal("expected incomplete metadata error")
	}
	var incomplete *playlist.IncompleteMetadataError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteMetadataError, got %T %v", err, err)
	}
	if incomplete.Requested != 3 || incomplete.Fetched != 2 {
		t.Fatalf("unexpected counts requested=%d fetched=%d", incomplete.Requested, incomplete.Fetched)
	}
	if !errors.Is(err, services.ErrIncompleteMetadata) {
		t.Fatal("expected error to match ErrIncompleteMetadata")
	}

	after, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("playlist changed on failed reconcile:\nbefore %s\nafter  %s", before, after)
	}
}

func TestReconcileProviderErrorIsTransport(t *testing.T) {
	p := playlist.New("test")
	p.AddVideos([]string{"a"})
	before := p.Clone()

	base := errors.New("connection refused")
	err := playlist.NewReconciler(&recordingProvider{err: base}).Reconcile(context.Background(), p)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected provider error to be wrapped, got %v", err)
	}
	if !reflect.DeepEqual(p, before) {
		t.Fatal("playlist changed on provider failure")
	}
}

func TestReconcileWithoutProvider(t *testing.T) {
	p := playlist.New("test")
	p.AddVideos([]string{"a"})
	err := playlist.NewReconciler(nil).Reconcile(context.Background(), p)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestProviderFunc(t *testing.T) {
	var got []string
	fn := playlist.ProviderFunc(func(_ context.Context, ids []string) ([]playlist.Record, error) {
		got = ids
		return []playlist.Record{{ID: ids[0]}}, nil
	})
	p := playlist.New("test")
	p.AddVideos([]string{"z"})
	if err := playlist.NewReconciler(fn).Reconcile(context.Background(), p); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"z"}) {
		t.Fatalf("unexpected ids %v", got)
	}
}
