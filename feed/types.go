package feed

import (
	"fmt"
	"slices"
	"strings"

	"github.com/s0up4200/cinefeed/tmdb"
)

// Category is one of the built-in movie lists
type Category int

const (
	NowPlaying Category = iota
	TopRated
)

// Categories lists the categories in tab order
var Categories = []Category{NowPlaying, TopRated}

// String returns the category name
func (c Category) String() string {
	switch c {
	case NowPlaying:
		return "now-playing"
	case TopRated:
		return "top-rated"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory parses a category name
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "now-playing", "now_playing", "nowplaying", "":
		return NowPlaying, nil
	case "top-rated", "top_rated", "toprated":
		return TopRated, nil
	}
	return NowPlaying, fmt.Errorf("unknown category %q (must be 'now-playing' or 'top-rated')", s)
}

// Mode tells whether the feed shows a category or search results
type Mode int

const (
	ModeCategory Mode = iota
	ModeSearch
)

// String returns the mode name
func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "category"
}

// Phase is the loading phase of the feed
type Phase int

const (
	Idle Phase = iota
	LoadingInitial
	LoadingAppend
	Loaded
	Errored
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case LoadingInitial:
		return "loading-initial"
	case LoadingAppend:
		return "loading-append"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is a snapshot of the feed
type State struct {
	Category     Category
	SearchText   string
	Searching    bool
	Items        []tmdb.Movie
	CurrentPage  int
	TotalPages   int
	TotalResults int
	HasMore      bool
	Phase        Phase
	LastError    error
	Generation   uint64
}

// IsSearching reports whether search results are shown
func (s State) IsSearching() bool {
	return s.Searching && strings.TrimSpace(s.SearchText) != ""
}

// IsLoading reports whether a feed request is outstanding
func (s State) IsLoading() bool {
	return s.Phase == LoadingInitial || s.Phase == LoadingAppend
}

// Mode returns the active query mode
func (s State) Mode() Mode {
	if s.IsSearching() {
		return ModeSearch
	}
	return ModeCategory
}

// ErrorMessage returns a human-readable description of LastError
func (s State) ErrorMessage() string {
	return tmdb.Describe(s.LastError)
}

func (s State) clone() State {
	s.Items = slices.Clone(s.Items)
	return s
}

// Request describes one feed fetch
type Request struct {
	Generation uint64
	Mode       Mode
	Category   Category
	Query      string
	Page       int
	Append     bool
}

// String describes the request for logs
func (r Request) String() string {
	kind := "initial"
	if r.Append {
		kind = "append"
	}
	if r.Mode == ModeSearch {
		return fmt.Sprintf("search %q page %d (%s, gen %d)", r.Query, r.Page, kind, r.Generation)
	}
	return fmt.Sprintf("%s page %d (%s, gen %d)", r.Category, r.Page, kind, r.Generation)
}

// Result is the outcome of a Request
type Result struct {
	Request Request
	Page    *tmdb.Page
	Err     error
}
