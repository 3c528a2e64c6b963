package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/s0up4200/cinefeed/tmdb"
)

// fakeAPI implements tmdb.API from canned pages keyed by list name
type fakeAPI struct {
	mu    sync.Mutex
	pages map[string]map[int]*tmdb.Page
	errs  map[string]map[int]error
	calls []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		pages: make(map[string]map[int]*tmdb.Page),
		errs:  make(map[string]map[int]error),
	}
}

func (f *fakeAPI) setPage(key string, p *tmdb.Page) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pages[key] == nil {
		f.pages[key] = make(map[int]*tmdb.Page)
	}
	f.pages[key][p.Page] = p
}

func (f *fakeAPI) setErr(key string, page int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errs[key] == nil {
		f.errs[key] = make(map[int]error)
	}
	f.errs[key][page] = err
}

func (f *fakeAPI) clearErr(key string, page int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.errs[key], page)
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) respond(key string, page int) (*tmdb.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("%s:%d", key, page))
	if err := f.errs[key][page]; err != nil {
		return nil, err
	}
	if p, ok := f.pages[key][page]; ok {
		return p, nil
	}
	// a missing fixture must not look like an exhausted list
	return nil, fmt.Errorf("fake: no fixture for %s page %d", key, page)
}

func (f *fakeAPI) NowPlaying(ctx context.Context, page int) (*tmdb.Page, error) {
	return f.respond("now-playing", page)
}

func (f *fakeAPI) TopRated(ctx context.Context, page int) (*tmdb.Page, error) {
	return f.respond("top-rated", page)
}

func (f *fakeAPI) SearchMovies(ctx context.Context, query string, page int) (*tmdb.Page, error) {
	return f.respond("search:"+query, page)
}

func (f *fakeAPI) MovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetails, error) {
	return nil, tmdb.ErrNotFound
}

func envelope(page, totalPages int, ids ...int64) *tmdb.Page {
	results := make([]tmdb.Movie, 0, len(ids))
	for _, id := range ids {
		results = append(results, tmdb.Movie{ID: id, Title: fmt.Sprintf("Movie %d", id)})
	}
	return &tmdb.Page{
		Page:         page,
		Results:      results,
		TotalPages:   totalPages,
		TotalResults: totalPages * 20,
	}
}

func itemIDs(items []tmdb.Movie) []int64 {
	ids := make([]int64, 0, len(items))
	for _, m := range items {
		ids = append(ids, m.ID)
	}
	return ids
}
