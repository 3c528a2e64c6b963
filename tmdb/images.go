package tmdb

import (
	"strings"
)

const (
	// DefaultImageBaseURL is the TMDB image CDN root
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	// DefaultPlaceholder is returned for movies without artwork
	DefaultPlaceholder = "/placeholder-poster.png"
)

// ImageKind selects the artwork category
type ImageKind int

const (
	Poster ImageKind = iota
	Backdrop
)

// ImageSize is a named size bucket
type ImageSize int

const (
	SizeSmall ImageSize = iota
	SizeMedium
	SizeLarge
)

// sizeTokens maps each kind to its width tokens, indexed by ImageSize
var sizeTokens = map[ImageKind][3]string{
	Poster:   {"w185", "w500", "w780"},
	Backdrop: {"w300", "w780", "w1280"},
}

// SizeToken returns the CDN width token for a kind and size. Unknown
// combinations resolve to "original".
func SizeToken(size ImageSize, kind ImageKind) string {
	tokens, ok := sizeTokens[kind]
	if !ok || size < SizeSmall || size > SizeLarge {
		return "original"
	}
	return tokens[size]
}

// ParseImageSize maps "small", "medium" and "large" to a size bucket
func ParseImageSize(s string) (ImageSize, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return SizeSmall, true
	case "medium":
		return SizeMedium, true
	case "large":
		return SizeLarge, true
	}
	return SizeMedium, false
}

// ImageResolver builds CDN URLs for poster and backdrop paths
type ImageResolver struct {
	baseURL     string
	placeholder string
}

// NewImageResolver creates a resolver. Empty arguments fall back to the defaults.
func NewImageResolver(baseURL, placeholder string) ImageResolver {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultImageBaseURL
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return ImageResolver{
		baseURL:     strings.TrimRight(baseURL, "/"),
		placeholder: placeholder,
	}
}

// URL resolves path for the given size and kind. A nil or empty path yields
// the placeholder.
func (r ImageResolver) URL(path *string, size ImageSize, kind ImageKind) string {
	if path == nil || *path == "" {
		return r.Placeholder()
	}
	p := *path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	base := r.baseURL
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + "/" + SizeToken(size, kind) + p
}

// Poster resolves a poster path
func (r ImageResolver) Poster(path *string, size ImageSize) string {
	return r.URL(path, size, Poster)
}

// Backdrop resolves a backdrop path
func (r ImageResolver) Backdrop(path *string, size ImageSize) string {
	return r.URL(path, size, Backdrop)
}

// Placeholder returns the fallback asset reference
func (r ImageResolver) Placeholder() string {
	if r.placeholder == "" {
		return DefaultPlaceholder
	}
	return r.placeholder
}
