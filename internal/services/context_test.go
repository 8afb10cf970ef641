package services_test

import (
	"context"
	"testing"

	"tubelist/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithCommand(ctx, "add")
	ctx = services.WithPlaylist(ctx, "mix")
	ctx = services.WithRequestID(ctx, "req-123")

	if cmd, ok := services.CommandFromContext(ctx); !ok || cmd != "add" {
		t.Fatalf("unexpected command: %v %v", cmd, ok)
	}
	if title, ok := services.PlaylistFromContext(ctx); !ok || title != "mix" {
		t.Fatalf("unexpected playlist: %v %v", title, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithCommand(ctx, "")
	ctx = services.WithPlaylist(ctx, "")
	if _, ok := services.CommandFromContext(ctx); ok {
		t.Fatal("expected no command value")
	}
	if _, ok := services.PlaylistFromContext(ctx); ok {
		t.Fatal("expected no playlist value")
	}
}
