package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinefeed/feed"
	"github.com/s0up4200/cinefeed/tmdb"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List now playing or top rated movies",
	Long: `Fetch a movie list page by page and print it.

Pages are loaded the same way the interactive feed loads them while
scrolling: page 1 first, then one page at a time until --pages pages are
loaded or the list ends. A filter narrows what is printed, never what is
fetched.`,
	Example: `  cinefeed list --category top-rated --pages 3
  cinefeed list --filter 'VoteAverage >= 7.5 and Year >= 2020'
  cinefeed list --preset acclaimed --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)

	listCmd.Flags().StringVarP(&category, "category", "c", "", "list to fetch (now-playing, top-rated)")

	for _, c := range []*cobra.Command{listCmd, searchCmd} {
		c.Flags().IntVarP(&pages, "pages", "n", 1, "number of pages to fetch")
		c.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
		addFilterFlags(c)
	}
}

func runList(cmd *cobra.Command, args []string) error {
	start, err := startCategory()
	if err != nil {
		return err
	}

	ctrl := feed.NewController(client, start, logger)
	logger.Info().Str("category", start.String()).Int("pages", pages).Msg("Fetching movies")
	return runFeed(cmd.Context(), ctrl, ctrl.Start())
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	ctrl := feed.NewController(client, feed.NowPlaying, logger)
	req, ok := ctrl.UpdateSearchText(query)
	if !ok {
		return fmt.Errorf("search query is empty")
	}
	logger.Info().Str("query", query).Int("pages", pages).Msg("Searching movies")
	return runFeed(cmd.Context(), ctrl, req)
}

func runFeed(ctx context.Context, ctrl *feed.Controller, req feed.Request) error {
	if pages < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", pages)
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	st, err := collectPages(ctx, ctrl, req, pages)
	if err != nil && len(st.Items) == 0 {
		return fmt.Errorf("%s: %w", tmdb.Describe(err), err)
	}
	if err != nil {
		logger.Warn().Err(err).Int("page", st.CurrentPage+1).Msg("Stopped early, printing the pages loaded so far")
	}

	movies := f.Apply(st.Items)
	view := feedView{State: st, Movies: movies}
	if f != nil {
		view.Filter = f.Expression()
	}

	if jsonOutput {
		return writeFeedJSON(os.Stdout, view, images)
	}
	writeFeedTable(os.Stdout, view)
	return nil
}

// collectPages applies req, then requests more until n pages are loaded or
// the list is exhausted. A failure stops paging; items already loaded are kept.
func collectPages(ctx context.Context, ctrl *feed.Controller, req feed.Request, n int) (feed.State, error) {
	for loaded := 0; ; {
		res, _ := ctrl.Load(ctx, req)
		if res.Err != nil {
			return ctrl.State(), res.Err
		}

		loaded++
		if loaded >= n {
			break
		}

		next, ok := ctrl.RequestMore()
		if !ok {
			break
		}
		req = next
	}
	return ctrl.State(), nil
}
