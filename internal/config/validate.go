package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tubelist/internal/services"
)

// Validate ensures the configuration is usable. Failures match
// services.ErrConfiguration.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validatePaths,
		c.validateYouTube,
		c.validateMetadataCache,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SaveDir) == "" {
		return errors.New("paths.save_dir must be set")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'tubelist config init')", defaultPath)
	}
	parsed, err := url.Parse(c.YouTube.BaseURL)
	if err != nil {
		return fmt.Errorf("youtube.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("youtube.base_url must use http or https, got %q", c.YouTube.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("youtube.base_url must include a host, got %q", c.YouTube.BaseURL)
	}
	if c.YouTube.TimeoutSeconds <= 0 {
		return errors.New("youtube.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateMetadataCache() error {
	if c.MetadataCache.MaxAgeHours < 0 {
		return errors.New("metadata_cache.max_age_hours must be >= 0")
	}
	if c.MetadataCache.Enabled && strings.TrimSpace(c.MetadataCache.Path) == "" {
		return errors.New("metadata_cache.path must be set when metadata_cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
