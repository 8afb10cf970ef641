package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubelist/internal/logging"
	"tubelist/internal/metacache"
	"tubelist/internal/services"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or prune the video metadata cache",
	}
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePurgeCommand(ctx))
	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of cached videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			count, err := cache.Count(ctx.commandCtx(cmd, ""))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cached videos\n", cache.Path(), count)
			return nil
		},
	}
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove cached entries older than metadata_cache.max_age_hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			runCtx := ctx.commandCtx(cmd, "")
			removed, err := cache.Purge(runCtx)
			if err != nil {
				return err
			}
			ctx.loggerFor(runCtx).Info("metadata cache purged", logging.Int64("removed", removed))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", removed)
			return nil
		},
	}
}

// openCache opens the configured metadata cache for maintenance commands.
func (c *commandContext) openCache() (*metacache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.MetadataCache.Enabled {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "cache", "metadata_cache.enabled is false", nil)
	}
	return metacache.Open(cfg.MetadataCache.Path, cfg.CacheMaxAge())
}
