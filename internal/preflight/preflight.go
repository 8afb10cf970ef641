package preflight

import (
	"context"

	"tubelist/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Save directory", cfg.Paths.SaveDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	if cfg.MetadataCache.Enabled {
		results = append(results, CheckMetadataCache(ctx, cfg.MetadataCache.Path, cfg.CacheMaxAge()))
	}

	results = append(results, CheckYouTube(ctx, cfg.YouTube.APIKey, cfg.YouTube.BaseURL, cfg.YouTubeTimeout()))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
