package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"tubelist/internal/playlist"
	"tubelist/internal/youtube"
)

// FakeYouTube serves the videos.list endpoint from an in-memory catalog.
// Ids missing from the catalog are silently left out of responses, which is
// how the real API reports deleted or private videos.
type FakeYouTube struct {
	*httptest.Server

	mu       sync.Mutex
	catalog  map[string]playlist.Record
	requests [][]string
	status   int
}

// NewFakeYouTube starts a fake API server and registers its shutdown.
func NewFakeYouTube(t testing.TB, records ...playlist.Record) *FakeYouTube {
	t.Helper()

	fake := &FakeYouTube{catalog: make(map[string]playlist.Record), status: http.StatusOK}
	for _, rec := range records {
		fake.catalog[rec.ID] = rec
	}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Close)
	return fake
}

// FailWith makes every following request answer with status.
func (f *FakeYouTube) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Requests returns the id batches received so far.
func (f *FakeYouTube) Requests() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeYouTube) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/videos" {
		http.NotFound(w, r)
		return
	}
	ids := strings.Split(r.URL.Query().Get("id"), ",")

	f.mu.Lock()
	f.requests = append(f.requests, ids)
	status := f.status
	resp := youtube.Response{Kind: "youtube#videoListResponse", Items: []youtube.Item{}}
	for _, id := range ids {
		rec, ok := f.catalog[id]
		if !ok {
			continue
		}
		resp.Items = append(resp.Items, youtube.Item{
			Kind:    "youtube#video",
			ID:      rec.ID,
			Snippet: youtube.Snippet{Title: rec.Title, PublishedAt: rec.PublishedAt},
		})
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, status, http.StatusText(status))
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}
