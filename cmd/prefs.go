package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinefeed/prefs"
)

// prefsCmd represents the prefs command
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change saved display preferences",
	Long: `Show or change the preferences the interactive feed saves: language
(en, zh-TW), theme (dark, light) and view_mode (grid, list).`,
	Annotations: map[string]string{annotationLocal: "true"},
}

var prefsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the saved preferences",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationLocal: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPrefs()
		if err != nil {
			return err
		}
		printPrefs(os.Stdout, store)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:         "set KEY VALUE",
	Short:       "Change one preference",
	Example:     "  cinefeed prefs set language zh-TW\n  cinefeed prefs set view_mode list",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationLocal: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPrefs()
		if err != nil {
			return err
		}
		if err := store.Set(args[0], args[1]); err != nil {
			return err
		}
		printPrefs(os.Stdout, store)
		return nil
	},
}

var prefsToggleCmd = &cobra.Command{
	Use:         "toggle KEY",
	Short:       "Flip language, theme or view_mode to its next value",
	Args:        cobra.ExactArgs(1),
	ValidArgs:   []string{prefs.KeyLanguage, prefs.KeyTheme, prefs.KeyViewMode},
	Annotations: map[string]string{annotationLocal: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPrefs()
		if err != nil {
			return err
		}

		switch args[0] {
		case prefs.KeyLanguage:
			_, err = store.ToggleLanguage()
		case prefs.KeyTheme:
			_, err = store.ToggleTheme()
		case prefs.KeyViewMode:
			_, err = store.ToggleViewMode()
		default:
			return fmt.Errorf("unknown preference %q (must be one of %s, %s, %s)", args[0], prefs.KeyLanguage, prefs.KeyTheme, prefs.KeyViewMode)
		}
		if err != nil {
			return err
		}
		printPrefs(os.Stdout, store)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsToggleCmd)
}

func openPrefs() (*prefs.Store, error) {
	store, err := prefs.Open(cfg.Prefs.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return store, nil
}

func printPrefs(w io.Writer, store *prefs.Store) {
	p := store.Get()
	fmt.Fprintf(w, "%-10s %s\n", prefs.KeyLanguage, p.Language)
	fmt.Fprintf(w, "%-10s %s\n", prefs.KeyTheme, p.Theme)
	fmt.Fprintf(w, "%-10s %s\n", prefs.KeyViewMode, p.ViewMode)
	fmt.Fprintf(w, "\nsaved in %s\n", store.Path())
}
