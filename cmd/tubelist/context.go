package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tubelist/internal/config"
	"tubelist/internal/logging"
	"tubelist/internal/metacache"
	"tubelist/internal/playlist"
	"tubelist/internal/playliststore"
	"tubelist/internal/services"
	"tubelist/internal/youtube"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	requestID string
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		requestID:    uuid.NewString(),
	}
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, resolved, _, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				if _, ok := logging.ParseLevel(level); !ok {
					c.configErr = services.Wrap(services.ErrValidation, "cli", "log level", fmt.Sprintf("unsupported value %q", level), nil)
					return
				}
				cfg.Logging.Level = strings.ToLower(level)
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// loggerFor returns the invocation logger tagged with the command name and
// correlation id.
func (c *commandContext) loggerFor(ctx context.Context) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	if c.loggerErr != nil || c.logger == nil {
		return logging.WithContext(ctx, logging.NewNop())
	}
	return logging.WithContext(ctx, c.logger)
}

// commandCtx derives the context passed to core operations for cmd.
func (c *commandContext) commandCtx(cmd *cobra.Command, title string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithCommand(ctx, cmd.Name())
	ctx = services.WithRequestID(ctx, c.requestID)
	if title != "" {
		ctx = services.WithPlaylist(ctx, title)
	}
	return ctx
}

func (c *commandContext) store() (*playliststore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return playliststore.New(cfg.Paths.SaveDir)
}

// provider builds the YouTube metadata provider, wrapped by the SQLite cache
// when metadata_cache.enabled is set. The returned func releases the cache.
func (c *commandContext) provider(ctx context.Context) (playlist.Provider, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := c.loggerFor(ctx)
	client, err := youtube.New(cfg.YouTube.APIKey, cfg.YouTube.BaseURL,
		youtube.WithTimeout(cfg.YouTubeTimeout()),
		youtube.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	if !cfg.MetadataCache.Enabled {
		return client, func() {}, nil
	}
	cache, err := metacache.Open(cfg.MetadataCache.Path, cfg.CacheMaxAge(), metacache.WithLogger(logger))
	if err != nil {
		logging.WarnWithContext(logger, "metadata cache unavailable", "metacache_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the cache file or disable metadata_cache"),
			logging.String(logging.FieldImpact, "metadata is fetched from the API without caching"))
		return client, func() {}, nil
	}
	return cache.Provider(client), func() { _ = cache.Close() }, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// withPlaylistLock runs fn while holding the advisory lock for title.
func withPlaylistLock(ctx context.Context, store *playliststore.Store, title string, fn func() error) (err error) {
	unlock, err := store.Lock(ctx, title)
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := unlock(); unlockErr != nil && err == nil {
			err = services.Wrap(services.ErrIO, "playliststore", "unlock", title, unlockErr)
		}
	}()
	return fn()
}
