package config

const (
	defaultConfigPath            = "~/.config/tubelist/config.toml"
	defaultSaveDir               = "$XDG_DATA_HOME/tubelist/playlists"
	defaultLogDir                = "$XDG_DATA_HOME/tubelist/logs"
	defaultMetadataCachePath     = "$XDG_CACHE_HOME/tubelist/metadata.db"
	defaultMetadataCacheMaxAge   = 24 * 30
	defaultYouTubeBaseURL        = "https://youtube.googleapis.com/youtube/v3"
	defaultYouTubeTimeoutSeconds = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SaveDir: defaultSaveDir,
			LogDir:  defaultLogDir,
		},
		YouTube: YouTube{
			BaseURL:        defaultYouTubeBaseURL,
			TimeoutSeconds: defaultYouTubeTimeoutSeconds,
		},
		MetadataCache: MetadataCache{
			Path:        defaultMetadataCachePath,
			MaxAgeHours: defaultMetadataCacheMaxAge,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
