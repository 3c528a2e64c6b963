package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinefeed/config"
	"github.com/s0up4200/cinefeed/feed"
	"github.com/s0up4200/cinefeed/prefs"
	"github.com/s0up4200/cinefeed/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"ui"},
	Short:   "Open the interactive movie feed",
	Long: `Open the interactive terminal feed.

Switch between Now Playing and Top Rated with tab, press / to search, enter
to open a movie and esc to go back. Scrolling near the end of the list loads
the next page. L, T and v toggle language, theme and grid/list view; the
choice is saved to prefs.path.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringVarP(&category, "category", "c", "", "start on this list (now-playing, top-rated)")
	addFilterFlags(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("browse needs an interactive terminal, use 'cinefeed list' or 'cinefeed search' instead")
	}

	start, err := startCategory()
	if err != nil {
		return err
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	store, err := prefs.Open(cfg.Prefs.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	uiLogger, closeLog, err := tuiLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	// the API client logs through the root logger, which would draw over the UI
	logger = uiLogger
	if err := rebuildClient(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := tui.New(ctx, tui.Options{
		API:            client,
		Images:         images,
		Prefs:          store,
		InitialPrefs:   store.Get(),
		Category:       start,
		SentinelMargin: cfg.Feed.SentinelMargin,
		Filter:         f,
		Logger:         uiLogger,
	})

	uiLogger.Info().Str("category", start.String()).Msg("Starting terminal UI")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// startCategory returns the --category flag, falling back to the configured default
func startCategory() (feed.Category, error) {
	name := cfg.Feed.DefaultCategory
	if category != "" {
		name = category
	}
	return feed.ParseCategory(name)
}

// tuiLogger sends logs to logging.file while the UI owns the terminal.
// Without a file, logs are discarded.
func tuiLogger(lc config.LoggingConfig) (zerolog.Logger, func(), error) {
	if lc.File == "" {
		return zerolog.Nop(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	lc.Color = false
	return setupLogger(lc, f), func() { f.Close() }, nil
}
