package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "https://api.themoviedb.org/3/",
			apiKey:  "test-key",
		},
		{
			name:    "missing URL",
			baseURL: "",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "URL is required",
		},
		{
			name:    "missing API key",
			baseURL: "https://api.themoviedb.org/3",
			apiKey:  " ",
			wantErr: true,
			errMsg:  "API key is required",
		},
		{
			name:    "relative URL",
			baseURL: "api.themoviedb.org",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "invalid tmdb URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.apiKey, zerolog.Nop())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://api.themoviedb.org/3", client.baseURL)
			assert.Equal(t, defaultLanguage, client.language)
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost", "k", zerolog.Nop(), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with language", func(t *testing.T) {
		client, err := NewClient("http://localhost", "k", zerolog.Nop(), WithLanguage("zh-TW"))
		require.NoError(t, err)
		assert.Equal(t, "zh-TW", client.language)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost", "k", zerolog.Nop(), WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Same(t, custom, client.httpClient)
	})
}

func TestListEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) (*Page, error)
		wantPath string
	}{
		{
			name:     "now playing",
			call:     func(c *Client) (*Page, error) { return c.NowPlaying(context.Background(), 2) },
			wantPath: "/movie/now_playing",
		},
		{
			name:     "top rated",
			call:     func(c *Client) (*Page, error) { return c.TopRated(context.Background(), 2) },
			wantPath: "/movie/top_rated",
		},
		{
			name:     "search",
			call:     func(c *Client) (*Page, error) { return c.SearchMovies(context.Background(), "star wars", 2) },
			wantPath: "/search/movie",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
				assert.Equal(t, "2", r.URL.Query().Get("page"))
				assert.Equal(t, "en-US", r.URL.Query().Get("language"))
				w.Write([]byte(`{"page":2,"total_pages":3,"total_results":41,"results":[{"id":7,"title":"Seven","poster_path":null,"release_date":"1995-09-22","vote_average":8.4,"vote_count":20000,"popularity":55.1}]}`))
			})

			page, err := tt.call(client)
			require.NoError(t, err)
			assert.Equal(t, 2, page.Page)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 41, page.TotalResults)
			require.Len(t, page.Results, 1)
			assert.Equal(t, int64(7), page.Results[0].ID)
			assert.Nil(t, page.Results[0].PosterPath)
			assert.Equal(t, 1995, page.Results[0].Year())
			assert.True(t, page.HasMorePages())
		})
	}
}

func TestSearchMoviesEscapesQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "query=am%C3%A9lie+%26+co")
		assert.Equal(t, "amélie & co", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"total_pages":0,"total_results":0,"results":[]}`))
	})

	page, err := client.SearchMovies(context.Background(), "amélie & co", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.False(t, page.HasMorePages())
}

func TestInputValidation(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	ctx := context.Background()

	_, err := client.NowPlaying(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = client.SearchMovies(ctx, "   ", 1)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = client.MovieDetails(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidID)

	assert.Equal(t, 0, calls, "invalid input must not reach the server")
}

func TestAPIErrors(t *testing.T) {
	t.Run("not found detail", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/movie/999", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{
				"status_code":    34,
				"status_message": "The resource you requested could not be found.",
			})
		})

		details, err := client.MovieDetails(context.Background(), 999)
		require.Error(t, err)
		assert.Nil(t, details)
		assert.ErrorIs(t, err, ErrNotFound)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "The resource you requested could not be found.", apiErr.Message)
		assert.Equal(t, KindNotFound, Classify(err))
		assert.Equal(t, "/movie/999", apiErr.Endpoint)
		assert.False(t, IsListNotFound(err))
		assert.Equal(t, "Movie not found.", Describe(err))
	})

	t.Run("not found list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
		})

		for _, load := range []func(context.Context) (*Page, error){
			func(ctx context.Context) (*Page, error) { return client.NowPlaying(ctx, 1) },
			func(ctx context.Context) (*Page, error) { return client.TopRated(ctx, 2) },
			func(ctx context.Context) (*Page, error) { return client.SearchMovies(ctx, "dune", 1) },
		} {
			_, err := load(context.Background())
			require.Error(t, err)
			assert.Equal(t, KindNotFound, Classify(err))
			assert.True(t, IsListNotFound(err))
			assert.Equal(t, "Not found.", Describe(err))
		}
	})

	t.Run("unauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`))
		})

		_, err := client.TopRated(context.Background(), 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Equal(t, KindUnauthorized, Classify(err))
	})

	t.Run("server error without body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.NowPlaying(context.Background(), 1)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Bad Gateway", apiErr.Message)
		assert.Equal(t, "Server error (502): Bad Gateway", Describe(err))
	})
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "wrong type", body: `{"page":"one","results":[]}`},
		{name: "missing page", body: `{"results":[]}`},
		{name: "negative totals", body: `{"page":1,"total_pages":-1,"results":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.NowPlaying(context.Background(), 1)
			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr), "got %v", err)
			assert.Equal(t, KindDecode, Classify(err))
		})
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(url, "test-key", zerolog.Nop())
	require.NoError(t, err)

	_, err = client.NowPlaying(context.Background(), 1)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "/movie/now_playing", netErr.Endpoint)
	assert.Equal(t, KindNetwork, Classify(err))
	assert.NotContains(t, err.Error(), "test-key")
}

func TestMovieDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 550,
			"title": "Fight Club",
			"overview": "A ticking-time-bomb insomniac...",
			"poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			"backdrop_path": null,
			"release_date": "1999-10-15",
			"vote_average": 8.4,
			"vote_count": 26280,
			"popularity": 61.4,
			"runtime": 139,
			"budget": 63000000,
			"revenue": 100853753,
			"genres": [{"id": 18, "name": "Drama"}, {"id": 53, "name": "Thriller"}],
			"production_companies": [{"id": 508, "name": "Regency Enterprises", "logo_path": "/7cxRWzi4LsVm4Utfpr1hfARNurT.png"}]
		}`))
	})

	details, err := client.MovieDetails(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), details.ID)
	assert.Equal(t, "Fight Club", details.Title)
	assert.Equal(t, 139, details.Runtime)
	assert.Equal(t, int64(63000000), details.Budget)
	assert.Equal(t, []string{"Drama", "Thriller"}, details.GenreNames())
	assert.Equal(t, []string{"Regency Enterprises"}, details.CompanyNames())
	assert.True(t, details.HasPoster())
	assert.Nil(t, details.BackdropPath)
}

func TestMovieReleased(t *testing.T) {
	tests := []struct {
		date   string
		wantOK bool
		year   int
	}{
		{"2023-07-21", true, 2023},
		{"", false, 0},
		{"not-a-date", false, 0},
	}

	for _, tt := range tests {
		m := Movie{ReleaseDate: tt.date}
		_, ok := m.Released()
		assert.Equal(t, tt.wantOK, ok, tt.date)
		assert.Equal(t, tt.year, m.Year(), tt.date)
	}
}
