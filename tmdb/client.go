package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%w: tmdb URL is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: tmdb API key is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid tmdb URL %q: %v", ErrInvalidConfig, baseURL, err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		language:   o.language,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// doRequest performs an authenticated GET and returns the raw body of a 2xx response
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("page", params.Get("page")).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the API key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
		var status statusResponse
		if json.Unmarshal(body, &status) == nil && status.StatusMessage != "" {
			apiErr.Message = status.StatusMessage
		}
		c.logger.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("TMDB API request rejected")
		return nil, apiErr
	}

	return body, nil
}

// fetchPage requests one page of a list endpoint and validates the envelope
func (c *Client) fetchPage(ctx context.Context, endpoint string, page int, params url.Values) (*Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var result Page
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "invalid page envelope", Err: err}
	}
	if result.Page < 1 {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "missing page number"}
	}
	if result.TotalPages < 0 || result.TotalResults < 0 {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "negative totals"}
	}
	if result.Results == nil {
		result.Results = []Movie{}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("page", result.Page).
		Int("total_pages", result.TotalPages).
		Int("count", len(result.Results)).
		Msg("Retrieved page from TMDB")

	return &result, nil
}

// Paged list endpoints. Everything else is a single movie lookup.
const (
	endpointNowPlaying = "/movie/now_playing"
	endpointTopRated   = "/movie/top_rated"
	endpointSearch     = "/search/movie"
)

// NowPlaying retrieves one page of movies currently in theatres
func (c *Client) NowPlaying(ctx context.Context, page int) (*Page, error) {
	return c.fetchPage(ctx, endpointNowPlaying, page, nil)
}

// TopRated retrieves one page of the top rated movies
func (c *Client) TopRated(ctx context.Context, page int) (*Page, error) {
	return c.fetchPage(ctx, endpointTopRated, page, nil)
}

// SearchMovies retrieves one page of movies matching query. The query is sent
// as-is (URL-escaped); blank queries are rejected.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*Page, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("query", query)
	return c.fetchPage(ctx, endpointSearch, page, params)
}

// MovieDetails retrieves the extended record for a single movie
func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	if id < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidID, id)
	}

	endpoint := "/movie/" + strconv.FormatInt(id, 10)
	body, err := c.doRequest(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var details MovieDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "invalid movie details", Err: err}
	}
	if details.ID == 0 {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "missing movie id"}
	}

	c.logger.Debug().
		Int64("movie_id", details.ID).
		Str("title", details.Title).
		Msg("Retrieved movie details from TMDB")

	return &details, nil
}
