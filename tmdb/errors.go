package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrNotFound indicates the requested catalog entry does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidPage indicates a page number below 1
	ErrInvalidPage = errors.New("page must be a positive integer")
	// ErrInvalidID indicates a movie id that is not a positive integer
	ErrInvalidID = errors.New("movie id must be a positive integer")
	// ErrEmptyQuery indicates a blank search query
	ErrEmptyQuery = errors.New("search query is empty")
)

// NetworkError is returned when no HTTP response was received.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("tmdb request %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx response from the TMDB API
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.IsNotFound()
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsListEndpoint reports whether the failed request was for a page of a list
// or search rather than a single movie
func (e *APIError) IsListEndpoint() bool {
	switch e.Endpoint {
	case endpointNowPlaying, endpointTopRated, endpointSearch:
		return true
	}
	return false
}

// IsListNotFound reports whether err is a 404 from a list or search endpoint.
func IsListNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound() && apiErr.IsListEndpoint()
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError is returned when a response body does not match the expected shape.
type DecodeError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tmdb response from %s could not be decoded: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("tmdb response from %s could not be decoded: %s", e.Endpoint, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a gateway failure for presentation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindAPI
	KindUnauthorized
	KindDecode
	KindNotFound
	KindInvalidInput
	KindCanceled
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAPI:
		return "api"
	case KindUnauthorized:
		return "unauthorized"
	case KindDecode:
		return "decode"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Classify reports which kind of failure err is.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	if errors.Is(err, ErrInvalidID) || errors.Is(err, ErrInvalidPage) || errors.Is(err, ErrEmptyQuery) {
		return KindInvalidInput
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsUnauthorized() {
			return KindUnauthorized
		}
		return KindAPI
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return KindDecode
	}

	return KindUnknown
}

// Describe converts err into a short message suitable for an error panel.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	switch Classify(err) {
	case KindNetwork:
		return "Network error, please check your connection."
	case KindUnauthorized:
		return "The TMDB API key was rejected."
	case KindAPI:
		var apiErr *APIError
		errors.As(err, &apiErr)
		if apiErr.Message != "" {
			return fmt.Sprintf("Server error (%d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Sprintf("Server error (%d).", apiErr.StatusCode)
	case KindDecode:
		return "Unexpected response from the server."
	case KindNotFound:
		if IsListNotFound(err) {
			return "Not found."
		}
		return "Movie not found."
	case KindInvalidInput:
		return "Invalid request: " + err.Error()
	case KindCanceled:
		return "Request cancelled."
	default:
		return err.Error()
	}
}
