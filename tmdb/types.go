package tmdb

import (
	"time"
)

// releaseDateLayout is the date format TMDB uses for release_date
const releaseDateLayout = "2006-01-02"

// Movie is a single entry in a list or search result
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
}

// Released parses the release date. ok is false when the date is absent or invalid.
func (m Movie) Released() (t time.Time, ok bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(releaseDateLayout, m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Year returns the release year, or 0 when unknown
func (m Movie) Year() int {
	if t, ok := m.Released(); ok {
		return t.Year()
	}
	return 0
}

// HasPoster reports whether the movie carries poster artwork
func (m Movie) HasPoster() bool {
	return m.PosterPath != nil && *m.PosterPath != ""
}

// Page is one page of list results plus pagination metadata
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasMorePages reports whether pages exist after this one
func (p *Page) HasMorePages() bool {
	return p.Page < p.TotalPages
}

// Genre is a named genre attached to a movie
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a production company attached to a movie
type Company struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

// MovieDetails is the extended record returned by the details endpoint
type MovieDetails struct {
	Movie
	Runtime             int       `json:"runtime"`
	Budget              int64     `json:"budget"`
	Revenue             int64     `json:"revenue"`
	Genres              []Genre   `json:"genres"`
	ProductionCompanies []Company `json:"production_companies"`
}

// GenreNames returns the genre names in order
func (d *MovieDetails) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// CompanyNames returns the production company names in order
func (d *MovieDetails) CompanyNames() []string {
	names := make([]string, 0, len(d.ProductionCompanies))
	for _, c := range d.ProductionCompanies {
		names = append(names, c.Name)
	}
	return names
}

// statusResponse is the error body TMDB sends with non-2xx responses
type statusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
