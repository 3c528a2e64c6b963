package i18n

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/cinefeed/prefs"
	"github.com/s0up4200/cinefeed/tmdb"
)

func TestCatalogsAreComplete(t *testing.T) {
	for key := range english {
		_, ok := traditionalChinese[key]
		assert.True(t, ok, "missing zh-TW translation for %s", key)
	}
	for key := range traditionalChinese {
		_, ok := english[key]
		assert.True(t, ok, "zh-TW key %s has no English original", key)
	}
}

func TestTranslate(t *testing.T) {
	en := New(prefs.English)
	zh := New(prefs.TraditionalChinese)

	assert.Equal(t, "Now Playing", en.T(NowPlaying))
	assert.Equal(t, "現正上映", zh.T(NowPlaying))
	assert.Equal(t, "Try again", en.T(TryAgain))
	assert.Equal(t, "再試一次", zh.T(TryAgain))
	assert.Equal(t, "136 min", en.T(Minutes, 136))
	assert.Equal(t, "136 分鐘", zh.T(Minutes, 136))
	assert.Equal(t, `Results for "dune"`, en.T(SearchResults, "dune"))
}

func TestUnsupportedLanguageFallsBack(t *testing.T) {
	c := New(prefs.Language("fr"))
	assert.Equal(t, prefs.English, c.Language())
	assert.Equal(t, "Top Rated", c.T(TopRated))
}

func TestYear(t *testing.T) {
	c := New(prefs.English)
	assert.Equal(t, "2024", c.Year(2024))
	assert.Equal(t, UnknownYear, c.Year(0))
}

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		en   string
		zh   string
	}{
		{
			name: "network",
			err:  &tmdb.NetworkError{Endpoint: "/movie/now_playing", Err: errors.New("dial tcp: refused")},
			en:   "Network error, please check your connection.",
			zh:   "網路錯誤，請檢查您的連線。",
		},
		{
			name: "server",
			err:  &tmdb.APIError{StatusCode: 503, Message: "Service Unavailable"},
			en:   "Server error (503): Service Unavailable",
			zh:   "伺服器錯誤 (503)：Service Unavailable",
		},
		{
			name: "unauthorized",
			err:  &tmdb.APIError{StatusCode: 401, Message: "Invalid API key"},
			en:   "The TMDB API key was rejected.",
			zh:   "TMDB API 金鑰遭拒絕。",
		},
		{
			name: "not found",
			err:  fmt.Errorf("loading detail: %w", &tmdb.APIError{StatusCode: 404}),
			en:   "Movie not found.",
			zh:   "找不到這部電影。",
		},
		{
			name: "detail not found",
			err:  &tmdb.APIError{Endpoint: "/movie/999", StatusCode: 404},
			en:   "Movie not found.",
			zh:   "找不到這部電影。",
		},
		{
			name: "search not found",
			err:  &tmdb.APIError{Endpoint: "/search/movie", StatusCode: 404},
			en:   "Not found.",
			zh:   "找不到資料。",
		},
		{
			name: "decode",
			err:  &tmdb.DecodeError{Endpoint: "/movie/top_rated", Reason: "missing page number"},
			en:   "Unexpected response from the server.",
			zh:   "伺服器回應格式錯誤。",
		},
		{
			name: "canceled",
			err:  &tmdb.NetworkError{Endpoint: "/search/movie", Err: context.Canceled},
			en:   "Request cancelled.",
			zh:   "請求已取消。",
		},
	}

	en := New(prefs.English)
	zh := New(prefs.TraditionalChinese)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.en, en.Error(tt.err))
			assert.Equal(t, tt.zh, zh.Error(tt.err))
			assert.Equal(t, tt.en, tmdb.Describe(tt.err), "English matches the gateway description")
		})
	}

	assert.Empty(t, en.Error(nil))
}
