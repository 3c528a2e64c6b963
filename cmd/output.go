package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/s0up4200/cinefeed/detail"
	"github.com/s0up4200/cinefeed/feed"
	"github.com/s0up4200/cinefeed/i18n"
	"github.com/s0up4200/cinefeed/prefs"
	"github.com/s0up4200/cinefeed/tmdb"
)

const (
	tableWidth = 85
	titleWidth = 50
)

type feedView struct {
	State  feed.State
	Movies []tmdb.Movie
	Filter string
}

type movieJSON struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Year        int     `json:"year,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Overview    string  `json:"overview"`
	PosterURL   string  `json:"poster_url"`
}

type feedJSON struct {
	Mode         string      `json:"mode"`
	Category     string      `json:"category,omitempty"`
	Query        string      `json:"query,omitempty"`
	Filter       string      `json:"filter,omitempty"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
	HasMore      bool        `json:"has_more"`
	Movies       []movieJSON `json:"movies"`
}

func toMovieJSON(m tmdb.Movie, res tmdb.ImageResolver) movieJSON {
	return movieJSON{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year(),
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		Overview:    m.Overview,
		PosterURL:   res.Poster(m.PosterPath, tmdb.SizeMedium),
	}
}

func writeFeedJSON(w io.Writer, v feedView, res tmdb.ImageResolver) error {
	out := feedJSON{
		Mode:         v.State.Mode().String(),
		Filter:       v.Filter,
		Page:         v.State.CurrentPage,
		TotalPages:   v.State.TotalPages,
		TotalResults: v.State.TotalResults,
		HasMore:      v.State.HasMore,
		Movies:       make([]movieJSON, 0, len(v.Movies)),
	}
	if v.State.IsSearching() {
		out.Query = v.State.SearchText
	} else {
		out.Category = v.State.Category.String()
	}
	for _, m := range v.Movies {
		out.Movies = append(out.Movies, toMovieJSON(m, res))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeFeedTable(w io.Writer, v feedView) {
	cat := i18n.New(prefs.English)

	if len(v.Movies) == 0 {
		fmt.Fprintln(w, cat.T(i18n.NoResults))
		return
	}

	movieText := "movie"
	if len(v.Movies) != 1 {
		movieText = "movies"
	}
	fmt.Fprintf(w, "Showing %d %s (%d loaded, page %d of %d)", len(v.Movies), movieText, len(v.State.Items), v.State.CurrentPage, v.State.TotalPages)
	if v.Filter != "" {
		fmt.Fprintf(w, " matching %q", v.Filter)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("━", tableWidth))
	fmt.Fprintf(w, "%-9s %s %-6s %s\n", "ID", runewidth.FillRight("TITLE", titleWidth), "YEAR", "RATING")
	fmt.Fprintln(w, strings.Repeat("━", tableWidth))

	for _, m := range v.Movies {
		title := runewidth.FillRight(runewidth.Truncate(m.Title, titleWidth, "..."), titleWidth)
		fmt.Fprintf(w, "%-9d %s %-6s ★ %.1f (%d)\n", m.ID, title, cat.Year(m.Year()), m.VoteAverage, m.VoteCount)
	}
	fmt.Fprintln(w, strings.Repeat("━", tableWidth))

	if !v.State.HasMore {
		fmt.Fprintln(w, cat.T(i18n.EndOfList))
	}
}

type detailJSON struct {
	movieJSON
	Runtime     int      `json:"runtime,omitempty"`
	Budget      int64    `json:"budget,omitempty"`
	Revenue     int64    `json:"revenue,omitempty"`
	Genres      []string `json:"genres"`
	Companies   []string `json:"production_companies"`
	BackdropURL string   `json:"backdrop_url"`
}

type detailResultJSON struct {
	Input string      `json:"input"`
	Movie *detailJSON `json:"movie,omitempty"`
	Error string      `json:"error,omitempty"`
}

func writeDetailsJSON(w io.Writer, states []detail.State, res tmdb.ImageResolver) error {
	out := make([]detailResultJSON, 0, len(states))
	for _, st := range states {
		r := detailResultJSON{Input: st.RawID}
		if st.Record != nil {
			rec := st.Record
			r.Movie = &detailJSON{
				movieJSON:   toMovieJSON(rec.Movie, res),
				Runtime:     rec.Runtime,
				Budget:      rec.Budget,
				Revenue:     rec.Revenue,
				Genres:      rec.GenreNames(),
				Companies:   rec.CompanyNames(),
				BackdropURL: res.Backdrop(rec.BackdropPath, tmdb.SizeLarge),
			}
			r.Movie.PosterURL = res.Poster(rec.PosterPath, tmdb.SizeLarge)
		} else {
			r.Error = st.ErrorMessage()
		}
		out = append(out, r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeDetail(w io.Writer, st detail.State, res tmdb.ImageResolver) {
	cat := i18n.New(prefs.English)

	if st.Record == nil {
		fmt.Fprintf(w, "✗ %s: %s\n", st.RawID, st.ErrorMessage())
		return
	}
	rec := st.Record

	fmt.Fprintf(w, "%s (%s)\n", rec.Title, cat.Year(rec.Year()))
	fmt.Fprintln(w, strings.Repeat("━", tableWidth))

	releaseDate := i18n.UnknownYear
	if t, ok := rec.Released(); ok {
		releaseDate = t.Format("2006-01-02")
	}
	fmt.Fprintf(w, "  %s: ★ %.1f / 10 (%d)\n", cat.T(i18n.Rating), rec.VoteAverage, rec.VoteCount)
	fmt.Fprintf(w, "  %s: %s\n", cat.T(i18n.ReleaseDate), releaseDate)
	if rec.Runtime > 0 {
		fmt.Fprintf(w, "  %s: %s\n", cat.T(i18n.Runtime), cat.T(i18n.Minutes, rec.Runtime))
	}
	if genres := rec.GenreNames(); len(genres) > 0 {
		fmt.Fprintf(w, "  %s: %s\n", cat.T(i18n.Genres), strings.Join(genres, ", "))
	}
	if companies := rec.CompanyNames(); len(companies) > 0 {
		fmt.Fprintf(w, "  %s: %s\n", cat.T(i18n.Companies), strings.Join(companies, ", "))
	}
	fmt.Fprintf(w, "  %s: %s\n", cat.T(i18n.Poster), res.Poster(rec.PosterPath, tmdb.SizeLarge))

	overview := strings.TrimSpace(rec.Overview)
	if overview == "" {
		overview = cat.T(i18n.NoOverview)
	}
	fmt.Fprintf(w, "\n%s\n", overview)
}
