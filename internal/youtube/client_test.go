package youtube_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"tubelist/internal/playlist"
	"tubelist/internal/services"
	"tubelist/internal/youtube"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := youtube.New(" ", "https://example.com")
	if err == nil {
		t.Fatal("expected error when api key missing")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestFetchVideosSingleBatchedRequest(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/videos" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "key" {
			t.Fatalf("expected key query parameter, got %q", r.URL.RawQuery)
		}
		if q.Get("id") != "a,b,c" {
			t.Fatalf("expected comma joined ids, got %q", q.Get("id"))
		}
		if q.Get("part") != "snippet" {
			t.Fatalf("expected snippet part, got %q", q.Get("part"))
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Fatalf("unexpected accept header %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"youtube#videoListResponse","items":[
			{"kind":"youtube#video","id":"b","snippet":{"title":"Bravo","publishedAt":"2020-02-02T00:00:00Z"}},
			{"kind":"youtube#video","id":"a","snippet":{"title":"Alpha"}}
		]}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL+"/")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	records, err := client.FetchVideos(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("FetchVideos returned error: %v", err)
	}
	want := []playlist.Record{
		{ID: "b", Title: "Bravo", PublishedAt: "2020-02-02T00:00:00Z"},
		{ID: "a", Title: "Alpha"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("records = %#v, want %#v", records, want)
	}
	if requests != 1 {
		t.Fatalf("expected one request, got %d", requests)
	}
}

func TestFetchVideosEmptyIDsSkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	records, err := client.FetchVideos(context.Background(), nil)
	if err != nil || len(records) != 0 {
		t.Fatalf("FetchVideos(nil) = %v, %v", records, err)
	}
}

func TestFetchVideosHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.FetchVideos(context.Background(), []string{"a"})
	if err == nil {
		t.Fatal("expected error when API returns non-200")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !youtube.IsAuthError(err) {
		t.Fatalf("expected auth error classification, got %v", err)
	}
	var statusErr *youtube.StatusError
	if !errors.As(err, &statusErr) || statusErr.Message != "API key not valid" {
		t.Fatalf("expected API message to be captured, got %v", err)
	}
}

func TestFetchVideosServerErrorIsNotAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.FetchVideos(context.Background(), []string{"a"})
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if youtube.IsAuthError(err) {
		t.Fatal("server error should not be classified as auth failure")
	}
}

func TestFetchVideosMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.FetchVideos(context.Background(), []string{"a"}); !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error for malformed payload, got %v", err)
	}
}

func TestFetchVideosTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client, err := youtube.New("key", server.URL, youtube.WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.FetchVideos(context.Background(), []string{"a"}); !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error on timeout, got %v", err)
	}
}

func TestPingUsesIDPart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("part") != "id" {
			t.Fatalf("expected id part, got %q", r.URL.Query().Get("part"))
		}
		_, _ = w.Write([]byte(`{"kind":"youtube#videoListResponse","items":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL, youtube.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}

func TestReconcileThroughClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":"a","snippet":{"title":"Alpha"}}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	p := playlist.New("mix")
	p.AddVideos([]string{"a", "gone"})

	err = playlist.NewReconciler(client).Reconcile(context.Background(), p)
	var incomplete *playlist.IncompleteMetadataError
	if !errors.As(err, &incomplete) || incomplete.Requested != 2 || incomplete.Fetched != 1 {
		t.Fatalf("expected incomplete metadata (2, 1), got %v", err)
	}
}
