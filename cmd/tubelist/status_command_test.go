package main

import (
	"errors"
	"net/http"
	"testing"

	"tubelist/internal/services"
	"tubelist/internal/testsupport"
)

func TestStatusReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithMetadataCache())

	out, _, err := env.run(t, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "== Checks ==")
	requireContains(t, out, "Save directory:")
	requireContains(t, out, "Metadata cache:")
	requireContains(t, out, "[OK] API reachable")
	requireContains(t, out, env.configPath)
}

func TestStatusFailsOnRejectedKey(t *testing.T) {
	env := setupCLITestEnv(t)
	env.youtube.FailWith(http.StatusForbidden)

	out, _, err := env.run(t, "status")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "auth failed")
}

func TestCacheCommands(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithMetadataCache())

	if _, _, err := env.run(t, "add", "mix", "--ids", "a,b"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, _, err := env.run(t, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, ": 2 cached videos")

	out, _, err = env.run(t, "cache", "purge")
	if err != nil {
		t.Fatalf("cache purge: %v", err)
	}
	requireContains(t, out, "Removed 0 expired entries")
}

func TestCacheCommandsRequireEnabledCache(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "cache", "stats")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
