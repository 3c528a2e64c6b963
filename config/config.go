package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/cinefeed/feed"
	"github.com/s0up4200/cinefeed/tmdb"
)

// EnvPrefix is prepended to every environment override, e.g. CINEFEED_TMDB_API_KEY
const EnvPrefix = "CINEFEED"

// ErrMissingAPIKey is returned when no TMDB API key is configured
var ErrMissingAPIKey = errors.New("tmdb.api_key is not set")

// Load loads the configuration from file and environment. A missing config
// file is not an error as long as the result validates.
func Load(configPath string) (*Config, error) {
	return load(configPath, true)
}

// LoadLocal loads the configuration for commands that never call TMDB. The
// API key may be absent.
func LoadLocal(configPath string) (*Config, error) {
	return load(configPath, false)
}

func load(configPath string, requireAPIKey bool) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cinefeed"))
		}
		v.AddConfigPath("/etc/cinefeed/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Prefs.Path == "" {
		cfg.Prefs.Path = defaultPrefsPath()
	}

	if err := validate(&cfg); err != nil && (requireAPIKey || !errors.Is(err, ErrMissingAPIKey)) {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// AutomaticEnv only resolves keys viper already knows about
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", tmdb.DefaultImageBaseURL)
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.timeout", "30s")
	v.SetDefault("tmdb.placeholder", tmdb.DefaultPlaceholder)

	v.SetDefault("feed.default_category", feed.NowPlaying.String())
	v.SetDefault("feed.sentinel_margin", 3)

	v.SetDefault("prefs.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")

	v.SetDefault("update.repository", "s0up4200/cinefeed")
}

func defaultPrefsPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cinefeed", "prefs.yaml")
	}
	return "cinefeed-prefs.yaml"
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb.base_url is required")
	}
	if cfg.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive, got %s", cfg.TMDB.Timeout)
	}

	if _, err := feed.ParseCategory(cfg.Feed.DefaultCategory); err != nil {
		return fmt.Errorf("feed.default_category: %w", err)
	}
	if cfg.Feed.SentinelMargin < 0 {
		return fmt.Errorf("feed.sentinel_margin must not be negative, got %d", cfg.Feed.SentinelMargin)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.presets.%s: expression is empty", name)
		}
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Update.Repository != "" && strings.Count(cfg.Update.Repository, "/") != 1 {
		return fmt.Errorf("update.repository must be in owner/name form, got %q", cfg.Update.Repository)
	}

	// checked last so LoadLocal still validates everything else
	if cfg.TMDB.APIKey == "" || cfg.TMDB.APIKey == "your-api-key-here" {
		return fmt.Errorf("%w: set it in the config file or %s_TMDB_API_KEY", ErrMissingAPIKey, EnvPrefix)
	}

	return nil
}
