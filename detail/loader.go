// Package detail loads the extended record of a single movie for the detail view.
package detail

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinefeed/tmdb"
)

// ParseID parses a route id. Missing, non-numeric and non-positive ids wrap
// tmdb.ErrInvalidID.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing id", tmdb.ErrInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", tmdb.ErrInvalidID, raw)
	}
	if id < 1 {
		return 0, fmt.Errorf("%w: %d is not positive", tmdb.ErrInvalidID, id)
	}
	return id, nil
}

// State is a snapshot of the loader
type State struct {
	RawID      string
	ID         int64
	Loading    bool
	Record     *tmdb.MovieDetails
	Err        error
	Generation uint64
}

// ErrorMessage returns a human-readable description of Err
func (s State) ErrorMessage() string {
	return tmdb.Describe(s.Err)
}

// Request describes one detail fetch
type Request struct {
	Generation uint64
	ID         int64
}

// Result is the outcome of a Request
type Result struct {
	Request Request
	Record  *tmdb.MovieDetails
	Err     error
}

// Loader fetches the detail record for the current route id. Entering a new id
// supersedes any fetch still in flight for the previous one.
type Loader struct {
	api    tmdb.API
	logger zerolog.Logger
	state  State
}

// NewLoader creates an empty loader
func NewLoader(api tmdb.API, logger zerolog.Logger) *Loader {
	return &Loader{api: api, logger: logger}
}

// State returns the current state
func (l *Loader) State() State {
	return l.state
}

// Enter handles a route entry with rawID. Re-entering the id that is already
// loading or loaded does nothing. An invalid id becomes an error state without
// a request.
func (l *Loader) Enter(rawID string) (Request, bool) {
	if rawID == l.state.RawID && l.state.Generation > 0 && (l.state.Loading || l.state.Record != nil) {
		return Request{}, false
	}

	l.state.Generation++
	l.state.RawID = rawID
	l.state.Record = nil
	l.state.Err = nil
	l.state.Loading = false

	id, err := ParseID(rawID)
	if err != nil {
		l.state.ID = 0
		l.state.Err = err
		l.logger.Debug().Str("raw_id", rawID).Err(err).Msg("Rejected detail route id")
		return Request{}, false
	}

	l.state.ID = id
	return l.issue(), true
}

// Retry re-issues the fetch for the current id after a failure
func (l *Loader) Retry() (Request, bool) {
	if l.state.Loading || l.state.ID == 0 || l.state.Err == nil {
		return Request{}, false
	}
	l.state.Generation++
	l.state.Err = nil
	return l.issue(), true
}

func (l *Loader) issue() Request {
	l.state.Loading = true
	req := Request{Generation: l.state.Generation, ID: l.state.ID}
	l.logger.Debug().Int64("movie_id", req.ID).Uint64("gen", req.Generation).Msg("Issuing detail request")
	return req
}

// Fetch performs req against the API. It reads no loader state.
func (l *Loader) Fetch(ctx context.Context, req Request) Result {
	record, err := l.api.MovieDetails(ctx, req.ID)
	return Result{Request: req, Record: record, Err: err}
}

// Apply stores res. Results for a superseded id are discarded and Apply
// reports false.
func (l *Loader) Apply(res Result) bool {
	if res.Request.Generation != l.state.Generation || !l.state.Loading {
		l.logger.Debug().
			Int64("movie_id", res.Request.ID).
			Uint64("gen", res.Request.Generation).
			Uint64("current_gen", l.state.Generation).
			Msg("Discarding stale detail response")
		return false
	}

	l.state.Loading = false
	if res.Err == nil && res.Record == nil {
		res.Err = fmt.Errorf("empty detail response for movie %d", res.Request.ID)
	}
	if res.Err != nil {
		l.state.Record = nil
		l.state.Err = res.Err
		l.logger.Warn().Err(res.Err).Int64("movie_id", res.Request.ID).Msg("Detail request failed")
		return true
	}

	l.state.Record = res.Record
	l.state.Err = nil
	return true
}

// Load enters rawID and, when that issues a request, fetches and applies it
func (l *Loader) Load(ctx context.Context, rawID string) State {
	req, ok := l.Enter(rawID)
	if ok {
		l.Apply(l.Fetch(ctx, req))
	}
	return l.state
}
