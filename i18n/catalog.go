// Package i18n holds the interface strings in English and Traditional Chinese.
package i18n

import (
	"errors"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/s0up4200/cinefeed/prefs"
	"github.com/s0up4200/cinefeed/tmdb"
)

// UnknownYear is shown when a release date is absent or invalid
const UnknownYear = "—"

var (
	tagEnglish = language.English
	tagZhTW    = language.MustParse("zh-TW")

	messages = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(tagEnglish))
	for key, msg := range english {
		_ = b.SetString(tagEnglish, string(key), msg)
	}
	for key, msg := range traditionalChinese {
		_ = b.SetString(tagZhTW, string(key), msg)
	}
	return b
}

// Catalog renders UI strings for one language
type Catalog struct {
	lang    prefs.Language
	printer *message.Printer
}

// New returns the catalog for lang. Unsupported languages fall back to English.
func New(lang prefs.Language) *Catalog {
	tag := tagEnglish
	if lang == prefs.TraditionalChinese {
		tag = tagZhTW
	} else {
		lang = prefs.English
	}
	return &Catalog{
		lang:    lang,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Language returns the catalog language
func (c *Catalog) Language() prefs.Language {
	return c.lang
}

// T renders key, formatting args into the message
func (c *Catalog) T(key Key, args ...any) string {
	return c.printer.Sprintf(string(key), args...)
}

// Error renders err for an error panel
func (c *Catalog) Error(err error) string {
	if err == nil {
		return ""
	}

	switch tmdb.Classify(err) {
	case tmdb.KindNetwork:
		return c.T(NetworkError)
	case tmdb.KindUnauthorized:
		return c.T(ErrUnauthorized)
	case tmdb.KindAPI:
		var apiErr *tmdb.APIError
		errors.As(err, &apiErr)
		if apiErr.Message != "" {
			return c.T(ErrServer, apiErr.StatusCode, apiErr.Message)
		}
		return c.T(ErrServerStatus, apiErr.StatusCode)
	case tmdb.KindDecode:
		return c.T(ErrDecode)
	case tmdb.KindNotFound:
		if tmdb.IsListNotFound(err) {
			return c.T(ErrListNotFound)
		}
		return c.T(ErrNotFound)
	case tmdb.KindInvalidInput:
		return c.T(ErrInvalid, err.Error())
	case tmdb.KindCanceled:
		return c.T(ErrCanceled)
	default:
		return err.Error()
	}
}

// Year renders a release year, or UnknownYear for 0
func (c *Catalog) Year(year int) string {
	if year <= 0 {
		return UnknownYear
	}
	// no digit grouping for years
	return strconv.Itoa(year)
}
