// Package tmdb provides a client for The Movie Database (TMDB) v3 API.
//
// The client covers the four read-only endpoints the feed needs: the
// now-playing and top-rated lists, title search, and movie details. Every list
// endpoint returns the same paged envelope (Page), so callers can treat the
// three list queries uniformly.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		"https://api.themoviedb.org/3",
//		"your-api-key",
//		logger,
//		tmdb.WithLanguage("en-US"),
//		tmdb.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.NowPlaying(ctx, 1)
//
// # Error Handling
//
// Failures are typed so callers can react to the cause:
//
//   - *NetworkError: no response was received (transport failure, timeout)
//   - *APIError: the server answered with a non-2xx status
//   - *DecodeError: the payload did not match the expected shape
//   - ErrNotFound: matches any *APIError with status 404 via errors.Is
//
// Nothing is retried; retrying is left to the caller.
//
// # Images
//
// ImageResolver turns the opaque poster/backdrop paths found in responses into
// CDN URLs for a named size bucket, falling back to a placeholder when a movie
// has no artwork.
package tmdb
