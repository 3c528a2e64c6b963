package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinefeed/detail"
	"github.com/s0up4200/cinefeed/tmdb"
)

// maxDetailConcurrency bounds parallel detail requests
const maxDetailConcurrency = 4

// detailCmd represents the detail command
var detailCmd = &cobra.Command{
	Use:   "detail ID [ID...]",
	Short: "Show the full record of one or more movies",
	Long: `Load the detail record of each movie id concurrently and print them in
the order given. A failed id is reported without stopping the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)

	detailCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
}

func runDetail(cmd *cobra.Command, args []string) error {
	states := loadDetails(cmd.Context(), client, args)

	var failed int
	for _, st := range states {
		if st.Record == nil {
			failed++
		}
	}

	if jsonOutput {
		if err := writeDetailsJSON(os.Stdout, states, images); err != nil {
			return err
		}
	} else {
		printDetails(os.Stdout, states)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d movies could not be loaded", failed, len(states))
	}
	return nil
}

// loadDetails runs one loader per raw id. Results keep the order of rawIDs.
func loadDetails(ctx context.Context, api tmdb.API, rawIDs []string) []detail.State {
	states := make([]detail.State, len(rawIDs))

	var g errgroup.Group
	g.SetLimit(maxDetailConcurrency)

	for i, raw := range rawIDs {
		g.Go(func() error {
			loader := detail.NewLoader(api, logger.With().Str("input", raw).Logger())
			states[i] = loader.Load(ctx, raw)
			if err := states[i].Err; err != nil {
				logger.Warn().Err(err).Str("input", raw).Msg("Failed to load movie")
			}
			// failures stay in the state so the other ids keep loading
			return nil
		})
	}

	_ = g.Wait()
	return states
}

func printDetails(w io.Writer, states []detail.State) {
	for i, st := range states {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDetail(w, st, images)
	}
}
