package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestImageResolver(t *testing.T) {
	r := NewImageResolver("https://image.tmdb.org/t/p/", "")

	tests := []struct {
		name string
		path *string
		size ImageSize
		kind ImageKind
		want string
	}{
		{"poster small", strPtr("/a.jpg"), SizeSmall, Poster, "https://image.tmdb.org/t/p/w185/a.jpg"},
		{"poster medium", strPtr("/a.jpg"), SizeMedium, Poster, "https://image.tmdb.org/t/p/w500/a.jpg"},
		{"poster large", strPtr("/a.jpg"), SizeLarge, Poster, "https://image.tmdb.org/t/p/w780/a.jpg"},
		{"backdrop small", strPtr("/b.jpg"), SizeSmall, Backdrop, "https://image.tmdb.org/t/p/w300/b.jpg"},
		{"backdrop large", strPtr("/b.jpg"), SizeLarge, Backdrop, "https://image.tmdb.org/t/p/w1280/b.jpg"},
		{"missing slash", strPtr("c.jpg"), SizeMedium, Poster, "https://image.tmdb.org/t/p/w500/c.jpg"},
		{"unknown size", strPtr("/d.jpg"), ImageSize(9), Poster, "https://image.tmdb.org/t/p/original/d.jpg"},
		{"unknown kind", strPtr("/d.jpg"), SizeSmall, ImageKind(9), "https://image.tmdb.org/t/p/original/d.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.URL(tt.path, tt.size, tt.kind))
		})
	}
}

func TestImageResolverPlaceholder(t *testing.T) {
	resolvers := []ImageResolver{
		NewImageResolver("", ""),
		NewImageResolver("https://cdn.example", "/missing.png"),
		{},
	}
	empty := ""

	for _, r := range resolvers {
		for _, kind := range []ImageKind{Poster, Backdrop, ImageKind(7)} {
			for _, size := range []ImageSize{SizeSmall, SizeMedium, SizeLarge, ImageSize(-1)} {
				assert.NotPanics(t, func() {
					assert.Equal(t, r.Placeholder(), r.URL(nil, size, kind))
					assert.Equal(t, r.Placeholder(), r.URL(&empty, size, kind))
				})
			}
		}
	}

	assert.Equal(t, DefaultPlaceholder, NewImageResolver("", "").Placeholder())
	assert.Equal(t, "/missing.png", NewImageResolver("", "/missing.png").Placeholder())
}

func TestParseImageSize(t *testing.T) {
	size, ok := ParseImageSize(" Large ")
	assert.True(t, ok)
	assert.Equal(t, SizeLarge, size)

	size, ok = ParseImageSize("huge")
	assert.False(t, ok)
	assert.Equal(t, SizeMedium, size)
}
