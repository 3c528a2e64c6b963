// Package prefs persists the user's interface preferences (language, theme and
// view mode) across sessions. Nothing in the feed depends on these values.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Language is a supported interface language
type Language string

const (
	English            Language = "en"
	TraditionalChinese Language = "zh-TW"
)

// Languages lists the supported languages in toggle order
var Languages = []Language{English, TraditionalChinese}

// Next returns the language after l in toggle order
func (l Language) Next() Language {
	if l == English {
		return TraditionalChinese
	}
	return English
}

// Theme is the colour scheme
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Toggle switches between light and dark
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// ViewMode is the layout of the feed
type ViewMode string

const (
	Grid ViewMode = "grid"
	List ViewMode = "list"
)

// Toggle switches between grid and list
func (v ViewMode) Toggle() ViewMode {
	if v == Grid {
		return List
	}
	return Grid
}

// Keys accepted by Store.Set
const (
	KeyLanguage = "language"
	KeyTheme    = "theme"
	KeyViewMode = "view_mode"
)

// Prefs is a snapshot of the stored preferences
type Prefs struct {
	Language Language `mapstructure:"language"`
	Theme    Theme    `mapstructure:"theme"`
	ViewMode ViewMode `mapstructure:"view_mode"`
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("zh-TW"),
})

// ParseLanguage maps a locale such as "zh_TW.UTF-8", "zh-Hant" or "en-GB" to a
// supported language. ok is false when nothing matches.
func ParseLanguage(locale string) (Language, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return English, false
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return English, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return English, false
	}
	return Languages[index], true
}

// DetectLanguage picks the default language from the usual locale variables
func DetectLanguage() Language {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if lang, ok := ParseLanguage(os.Getenv(env)); ok {
			return lang
		}
	}
	return English
}

// Defaults returns the preferences used when nothing is stored
func Defaults() Prefs {
	return Prefs{
		Language: DetectLanguage(),
		Theme:    Dark,
		ViewMode: Grid,
	}
}

// Validate checks every field
func (p Prefs) Validate() error {
	if p.Language != English && p.Language != TraditionalChinese {
		return fmt.Errorf("invalid language %q (must be 'en' or 'zh-TW')", p.Language)
	}
	if p.Theme != Dark && p.Theme != Light {
		return fmt.Errorf("invalid theme %q (must be 'light' or 'dark')", p.Theme)
	}
	if p.ViewMode != Grid && p.ViewMode != List {
		return fmt.Errorf("invalid view mode %q (must be 'grid' or 'list')", p.ViewMode)
	}
	return nil
}

// Store reads and writes preferences in a YAML file
type Store struct {
	path   string
	v      *viper.Viper
	prefs  Prefs
	logger zerolog.Logger
	mu     sync.Mutex
}

// Open loads preferences from path. A missing file yields defaults; invalid
// stored values fall back to their defaults individually.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("prefs path is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := Defaults()
	v.SetDefault(KeyLanguage, string(defaults.Language))
	v.SetDefault(KeyTheme, string(defaults.Theme))
	v.SetDefault(KeyViewMode, string(defaults.ViewMode))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading preferences: %w", err)
		}
		logger.Debug().Str("path", path).Msg("No stored preferences, using defaults")
	}

	var stored Prefs
	if err := v.Unmarshal(&stored); err != nil {
		return nil, fmt.Errorf("error unmarshaling preferences: %w", err)
	}

	s := &Store{path: path, v: v, logger: logger}
	s.prefs = sanitize(stored, defaults, logger)
	return s, nil
}

func sanitize(p, defaults Prefs, logger zerolog.Logger) Prefs {
	if lang, ok := ParseLanguage(string(p.Language)); ok {
		p.Language = lang
	} else {
		logger.Warn().Str("language", string(p.Language)).Msg("Ignoring stored language")
		p.Language = defaults.Language
	}
	if p.Theme != Dark && p.Theme != Light {
		logger.Warn().Str("theme", string(p.Theme)).Msg("Ignoring stored theme")
		p.Theme = defaults.Theme
	}
	if p.ViewMode != Grid && p.ViewMode != List {
		logger.Warn().Str("view_mode", string(p.ViewMode)).Msg("Ignoring stored view mode")
		p.ViewMode = defaults.ViewMode
	}
	return p
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Get returns the current preferences
func (s *Store) Get() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update validates next and writes it to disk
func (s *Store) Update(next Prefs) error {
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(KeyLanguage, string(next.Language))
	s.v.Set(KeyTheme, string(next.Theme))
	s.v.Set(KeyViewMode, string(next.ViewMode))

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	s.logger.Debug().
		Str("language", string(next.Language)).
		Str("theme", string(next.Theme)).
		Str("view_mode", string(next.ViewMode)).
		Str("path", s.path).
		Msg("Saved preferences")
	s.prefs = next
	return nil
}

// Set changes a single preference by key name
func (s *Store) Set(key, value string) error {
	next := s.Get()
	value = strings.TrimSpace(value)

	switch strings.ToLower(key) {
	case KeyLanguage:
		lang, ok := ParseLanguage(value)
		if !ok {
			return fmt.Errorf("invalid language %q (must be 'en' or 'zh-TW')", value)
		}
		next.Language = lang
	case KeyTheme:
		next.Theme = Theme(strings.ToLower(value))
	case KeyViewMode, "view-mode", "viewmode":
		next.ViewMode = ViewMode(strings.ToLower(value))
	default:
		return fmt.Errorf("unknown preference %q (must be one of %s, %s, %s)", key, KeyLanguage, KeyTheme, KeyViewMode)
	}
	return s.Update(next)
}

// ToggleLanguage switches to the next language and saves
func (s *Store) ToggleLanguage() (Prefs, error) {
	next := s.Get()
	next.Language = next.Language.Next()
	return next, s.Update(next)
}

// ToggleTheme switches between light and dark and saves
func (s *Store) ToggleTheme() (Prefs, error) {
	next := s.Get()
	next.Theme = next.Theme.Toggle()
	return next, s.Update(next)
}

// ToggleViewMode switches between grid and list and saves
func (s *Store) ToggleViewMode() (Prefs, error) {
	next := s.Get()
	next.ViewMode = next.ViewMode.Toggle()
	return next, s.Update(next)
}
