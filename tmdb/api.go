package tmdb

import (
	"context"
)

// API defines the TMDB operations the feed and detail views depend on
type API interface {
	// NowPlaying retrieves one page of movies currently in theatres
	NowPlaying(ctx context.Context, page int) (*Page, error)

	// TopRated retrieves one page of the top rated movies
	TopRated(ctx context.Context, page int) (*Page, error)

	// SearchMovies retrieves one page of movies whose title matches query
	SearchMovies(ctx context.Context, query string, page int) (*Page, error)

	// MovieDetails retrieves the extended record for a single movie
	MovieDetails(ctx context.Context, id int64) (*MovieDetails, error)
}

var _ API = (*Client)(nil)
