package feed

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinefeed/tmdb"
)

// Controller drives the home feed state machine
type Controller struct {
	api    tmdb.API
	logger zerolog.Logger
	state  State

	// failed is the last request that ended in an error, kept for Retry
	failed *Request
}

// NewController creates a controller showing category. Nothing is fetched
// until Start is called.
func NewController(api tmdb.API, category Category, logger zerolog.Logger) *Controller {
	return &Controller{
		api:    api,
		logger: logger,
		state: State{
			Category:    category,
			Items:       []tmdb.Movie{},
			CurrentPage: 1,
			HasMore:     true,
			Phase:       Idle,
		},
	}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	return c.state.clone()
}

// Start loads page 1 of the active mode
func (c *Controller) Start() Request {
	return c.reload()
}

// SelectCategory switches to category. Selecting the category that is already
// shown, outside search mode and after the first load, does nothing.
func (c *Controller) SelectCategory(category Category) (Request, bool) {
	if category == c.state.Category && !c.state.Searching && c.state.Phase != Idle {
		return Request{}, false
	}

	c.logger.Debug().
		Str("from", c.state.Category.String()).
		Str("to", category.String()).
		Bool("was_searching", c.state.Searching).
		Msg("Selecting feed category")

	c.state.Category = category
	c.state.SearchText = ""
	c.state.Searching = false
	return c.reload(), true
}

// UpdateSearchText applies a new search query. A non-blank query starts a new
// search from page 1. A blank query leaves search mode and reloads page 1 of
// the active category; it does nothing when search mode was not active.
func (c *Controller) UpdateSearchText(query string) (Request, bool) {
	c.state.SearchText = query

	if strings.TrimSpace(query) == "" {
		if !c.state.Searching {
			return Request{}, false
		}
		c.state.Searching = false
		c.logger.Debug().Str("category", c.state.Category.String()).Msg("Search cleared, reloading category")
		return c.reload(), true
	}

	c.state.Searching = true
	return c.reload(), true
}

// CloseSearch clears the query and returns to page 1 of the active category.
func (c *Controller) CloseSearch() (Request, bool) {
	return c.UpdateSearchText("")
}

// RequestMore asks for the next page. It does nothing while a request is
// outstanding or when the last page has been reached, so at most one feed
// request is in flight at any time. Before the first load it loads page 1.
func (c *Controller) RequestMore() (Request, bool) {
	if c.state.IsLoading() {
		c.logger.Debug().Str("phase", c.state.Phase.String()).Msg("Ignoring load more while loading")
		return Request{}, false
	}
	if c.state.Phase == Idle {
		return c.reload(), true
	}
	if !c.state.HasMore {
		return Request{}, false
	}
	if c.state.Phase == Errored && c.failed != nil && !c.failed.Append {
		// nothing was loaded yet, so "more" means "page 1 again"
		return c.Retry()
	}
	return c.issue(c.state.CurrentPage+1, true), true
}

// Retry re-issues the request that failed last. Without a failed request it
// reloads page 1 of the active mode.
func (c *Controller) Retry() (Request, bool) {
	if c.state.IsLoading() {
		return Request{}, false
	}
	failed := c.failed
	if failed != nil && failed.Append {
		c.state.LastError = nil
		return c.issue(failed.Page, true), true
	}
	return c.reload(), true
}

// Fetch performs req against the API. It reads no controller state and is
// safe to call from any goroutine.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	var (
		page *tmdb.Page
		err  error
	)

	switch {
	case req.Mode == ModeSearch:
		page, err = c.api.SearchMovies(ctx, req.Query, req.Page)
	case req.Category == TopRated:
		page, err = c.api.TopRated(ctx, req.Page)
	case req.Category == NowPlaying:
		page, err = c.api.NowPlaying(ctx, req.Page)
	default:
		err = fmt.Errorf("unknown category %d", int(req.Category))
	}

	return Result{Request: req, Page: page, Err: err}
}

// Apply merges res into the state. Results issued under an older generation
// are discarded and Apply reports false.
func (c *Controller) Apply(res Result) bool {
	req := res.Request
	if req.Generation != c.state.Generation {
		c.logger.Debug().
			Str("request", req.String()).
			Uint64("current_gen", c.state.Generation).
			Msg("Discarding stale feed response")
		return false
	}
	if !c.state.IsLoading() {
		// already applied
		return false
	}

	if res.Err == nil && res.Page == nil {
		res.Err = fmt.Errorf("empty response for %s", req)
	}

	if res.Err != nil {
		c.state.LastError = res.Err
		c.state.Phase = Errored
		failed := req
		c.failed = &failed
		if !req.Append {
			c.state.Items = []tmdb.Movie{}
			c.state.CurrentPage = 1
			c.state.TotalPages = 0
			c.state.TotalResults = 0
			c.state.HasMore = true
		}
		c.logger.Warn().
			Err(res.Err).
			Str("request", req.String()).
			Int("kept_items", len(c.state.Items)).
			Msg("Feed request failed")
		return true
	}

	page := res.Page
	if req.Append {
		c.state.Items = append(slices.Clip(c.state.Items), page.Results...)
	} else {
		c.state.Items = slices.Clone(page.Results)
	}
	c.state.CurrentPage = page.Page
	c.state.TotalPages = page.TotalPages
	c.state.TotalResults = page.TotalResults
	c.state.HasMore = page.Page < page.TotalPages
	c.state.Phase = Loaded
	c.state.LastError = nil
	c.failed = nil

	c.logger.Debug().
		Str("request", req.String()).
		Int("items", len(c.state.Items)).
		Bool("has_more", c.state.HasMore).
		Msg("Applied feed page")
	return true
}

// Load fetches req and applies the result in one step
func (c *Controller) Load(ctx context.Context, req Request) (Result, bool) {
	res := c.Fetch(ctx, req)
	return res, c.Apply(res)
}

// reload resets the accumulated state and requests page 1 of the active mode
func (c *Controller) reload() Request {
	c.state.Items = []tmdb.Movie{}
	c.state.CurrentPage = 1
	c.state.TotalPages = 0
	c.state.TotalResults = 0
	c.state.HasMore = true
	c.state.LastError = nil
	c.failed = nil
	return c.issue(1, false)
}

// issue bumps the generation and enters the matching loading phase
func (c *Controller) issue(page int, appendPage bool) Request {
	c.state.Generation++

	req := Request{
		Generation: c.state.Generation,
		Mode:       c.state.Mode(),
		Category:   c.state.Category,
		Page:       page,
		Append:     appendPage,
	}
	if req.Mode == ModeSearch {
		req.Query = c.state.SearchText
	}

	if appendPage {
		c.state.Phase = LoadingAppend
	} else {
		c.state.Phase = LoadingInitial
	}

	c.logger.Debug().Str("request", req.String()).Msg("Issuing feed request")
	return req
}
