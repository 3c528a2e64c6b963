package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Prefs   PrefsConfig   `mapstructure:"prefs"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// TMDBConfig holds the metadata API connection details
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Placeholder  string        `mapstructure:"placeholder"`
}

// FeedConfig controls the home feed
type FeedConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
	// SentinelMargin is how many rows before the end of the list the
	// load-more marker counts as visible
	SentinelMargin int `mapstructure:"sentinel_margin"`
}

// FilterConfig contains named display filters
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// PrefsConfig locates the persisted UI preferences
type PrefsConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	// File receives logs while the terminal UI is running. Empty discards them.
	File string `mapstructure:"file"`
}

// UpdateConfig configures self-update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
