package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"tubelist/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	SaveDir string `toml:"save_dir"`
	LogDir  string `toml:"log_dir"`
}

// YouTube contains configuration for the YouTube Data API.
type YouTube struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// MetadataCache contains configuration for the local video metadata cache.
type MetadataCache struct {
	Enabled     bool   `toml:"enabled"`       // Default: false
	Path        string `toml:"path"`          // Default: $XDG_CACHE_HOME/tubelist/metadata.db
	MaxAgeHours int    `toml:"max_age_hours"` // 0 keeps entries forever
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for tubelist.
//
// Configuration sections by subsystem:
//   - Paths: playlist documents and log files
//   - YouTube: metadata provider credentials and endpoint
//   - MetadataCache: SQLite cache in front of the provider
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	YouTube       YouTube       `toml:"youtube"`
	MetadataCache MetadataCache `toml:"metadata_cache"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "resolve path", "", err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "open config", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "parse config", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tubelist.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the save and log directories. The cache
// directory is created only when the cache is enabled.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.SaveDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, "config", "create directory", dir, err)
		}
	}
	if c.MetadataCache.Enabled && strings.TrimSpace(c.MetadataCache.Path) != "" {
		dir := filepath.Dir(c.MetadataCache.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, "config", "create cache directory", dir, err)
		}
	}
	return nil
}

// YouTubeTimeout returns the per-request timeout for the YouTube client.
func (c *Config) YouTubeTimeout() time.Duration {
	return time.Duration(c.YouTube.TimeoutSeconds) * time.Second
}

// CacheMaxAge returns how long cached metadata stays fresh. Zero means forever.
func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.MetadataCache.MaxAgeHours) * time.Hour
}

// expandPath resolves a leading tilde and the supported environment
// variables, then returns a cleaned absolute path.
func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	home, homeErr := os.UserHomeDir()
	if strings.HasPrefix(pathValue, "~") {
		if homeErr != nil {
			return "", fmt.Errorf("resolve home directory: %w", homeErr)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	if strings.Contains(pathValue, "$") {
		var expandErr error
		pathValue = os.Expand(pathValue, func(name string) string {
			value, ok := lookupPathVar(name, home)
			if !ok {
				return "$" + name
			}
			if value == "" && homeErr != nil {
				expandErr = fmt.Errorf("resolve $%s: %w", name, homeErr)
			}
			return value
		})
		if expandErr != nil {
			return "", expandErr
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// lookupPathVar returns the value for the variables path settings may
// reference. XDG variables fall back to their specification defaults.
func lookupPathVar(name, home string) (string, bool) {
	fallback := map[string]string{
		"XDG_DATA_HOME":   ".local/share",
		"XDG_CONFIG_HOME": ".config",
		"XDG_CACHE_HOME":  ".cache",
	}
	switch name {
	case "HOME":
		return home, true
	case "XDG_DATA_HOME", "XDG_CONFIG_HOME", "XDG_CACHE_HOME":
		if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
			return value, true
		}
		if home == "" {
			return "", true
		}
		return filepath.Join(home, fallback[name]), true
	default:
		return "", false
	}
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
