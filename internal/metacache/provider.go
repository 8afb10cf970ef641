package metacache

import (
	"context"

	"tubelist/internal/logging"
	"tubelist/internal/playlist"
)

type cachingProvider struct {
	cache    *Cache
	upstream playlist.Provider
}

// Provider wraps upstream so cached ids are answered locally. Cached records
// come first in request order, followed by the upstream response.
func (c *Cache) Provider(upstream playlist.Provider) playlist.Provider {
	return &cachingProvider{cache: c, upstream: upstream}
}

func (p *cachingProvider) FetchVideos(ctx context.Context, ids []string) ([]playlist.Record, error) {
	hits, err := p.cache.Lookup(ctx, ids)
	if err != nil {
		logging.WarnWithContext(p.cache.logger, "metadata cache lookup failed", "metacache_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the cache file if the error persists"),
			logging.String(logging.FieldImpact, "all videos are fetched from the API"))
		hits = nil
	}

	records := make([]playlist.Record, 0, len(ids))
	misses := make([]string, 0, len(ids))
	for _, id := range ids {
		if rec, ok := hits[id]; ok {
			records = append(records, rec)
			continue
		}
		misses = append(misses, id)
	}

	p.cache.logger.Debug("metadata cache lookup",
		logging.Int("requested", len(ids)),
		logging.Int("hits", len(records)),
		logging.Int("misses", len(misses)))

	if len(misses) == 0 {
		return records, nil
	}

	fetched, err := p.upstream.FetchVideos(ctx, misses)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Store(ctx, fetched); err != nil {
		logging.WarnWithContext(p.cache.logger, "metadata cache store failed", "metacache_store_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "these videos will be fetched again next time"))
	}
	return append(records, fetched...), nil
}
