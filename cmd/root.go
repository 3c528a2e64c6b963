package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinefeed/config"
	"github.com/s0up4200/cinefeed/filter"
	"github.com/s0up4200/cinefeed/tmdb"
)

// Commands annotated with annotationLocal never call TMDB, so they run
// without an API key. annotationNoConfig skips configuration entirely.
const (
	annotationLocal    = "cinefeed/local"
	annotationNoConfig = "cinefeed/no-config"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *tmdb.Client
	images   tmdb.ImageResolver
	presets  *filter.Presets

	// Shared command flags
	filterExpr string
	preset     string
	category   string
	pages      int
	jsonOutput bool

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinefeed",
	Short: "Browse now playing, top rated and searched movies from TMDB",
	Long: `cinefeed is a terminal movie browser backed by The Movie Database.

Run "cinefeed browse" for the interactive feed with infinite scroll, or use
list, search and detail for scriptable output.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information for the version and update commands
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}

// initializeApp loads configuration and builds the logger, filter presets
// and TMDB client for the command being run
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[annotationNoConfig] != "" {
		return nil
	}
	local := cmd.Annotations[annotationLocal] != ""

	load := config.Load
	if local {
		load = config.LoadLocal
	}

	var err error
	cfg, err = load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(logLevel)
	}
	logger = setupLogger(cfg.Logging, os.Stderr)

	presets, err = buildPresets(cfg.Filter.Presets, logger)
	if err != nil {
		return err
	}

	if local {
		return nil
	}

	return rebuildClient()
}

// buildPresets compiles the configured filter presets
func buildPresets(defs map[string]string, log zerolog.Logger) (*filter.Presets, error) {
	compiler := filter.NewCompiler()
	p := filter.NewPresets(compiler)
	if err := p.RegisterAll(defs); err != nil {
		return nil, fmt.Errorf("invalid filter preset: %w", err)
	}

	log.Debug().
		Strs("presets", p.Names()).
		Int("compiled", compiler.Size()).
		Msg("Filter presets loaded")
	return p, nil
}

// rebuildClient creates the TMDB client with the current logger
func rebuildClient() error {
	var err error
	client, err = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithUserAgent("cinefeed/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}
	images = tmdb.NewImageResolver(cfg.TMDB.ImageBaseURL, cfg.TMDB.Placeholder)

	logger.Debug().
		Str("base_url", cfg.TMDB.BaseURL).
		Str("language", cfg.TMDB.Language).
		Dur("timeout", cfg.TMDB.Timeout).
		Msg("TMDB client ready")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveFilter picks the display filter from --filter or --preset
func resolveFilter() (*filter.Filter, error) {
	f, err := presets.Resolve(filterExpr, preset)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if f != nil {
		logger.Debug().Str("filter", f.Expression()).Msg("Display filter active")
	}
	return f, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'VoteAverage >= 7.5'")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}
