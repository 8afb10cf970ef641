package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tubelist/internal/config"
	"tubelist/internal/playlist"
	"tubelist/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	youtube    *testsupport.FakeYouTube
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	isolateHome(t)

	fake := testsupport.NewFakeYouTube(t,
		playlist.Record{ID: "a", Title: "First", PublishedAt: "2021-03-04T05:06:07Z"},
		playlist.Record{ID: "b", Title: "Second", PublishedAt: "2022-01-02T00:00:00Z"},
		playlist.Record{ID: "c", Title: "Third", PublishedAt: "2023-07-08T09:10:11Z"},
	)
	opts = append([]testsupport.ConfigOption{testsupport.WithBaseURL(fake.URL)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"

	return &cliTestEnv{
		cfg:        cfg,
		configPath: testsupport.WriteConfigFile(t, cfg),
		youtube:    fake,
	}
}

// isolateHome points HOME and the XDG variables at a fresh temp dir so no
// user config or API key leaks into a test.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"XDG_DATA_HOME", "XDG_CONFIG_HOME", "XDG_CACHE_HOME", "YOUTUBE_API_KEY"} {
		t.Setenv(key, "")
	}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, args, e.configPath)
}

func (e *cliTestEnv) playlistPath(title string) string {
	return filepath.Join(e.cfg.Paths.SaveDir, title+".json")
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
