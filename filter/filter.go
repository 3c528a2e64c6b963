// Package filter narrows a list of movies with expr-lang expressions.
//
// Filters are a view: they never modify the list they are applied to.
//
//	c := filter.NewCompiler()
//	f, err := c.Compile(`VoteAverage >= 7.5 and Year >= 2000`)
//	shown := f.Apply(state.Items)
package filter

import (
	"github.com/expr-lang/expr"

	"github.com/s0up4200/cinefeed/tmdb"
)

// Match evaluates the filter against movie
func (f *Filter) Match(movie tmdb.Movie) (bool, error) {
	out, err := expr.Run(f.program, f.env(movie))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieID:    movie.ID,
			MovieTitle: movie.Title,
			Err:        err,
		}
	}
	// AsBool guarantees the result type
	return out.(bool), nil
}

// Evaluate reports whether movie matches. Evaluation errors count as no match.
func (f *Filter) Evaluate(movie tmdb.Movie) bool {
	ok, err := f.Match(movie)
	return err == nil && ok
}

// Apply returns the matching movies in their original order. A nil filter
// matches everything.
func (f *Filter) Apply(movies []tmdb.Movie) []tmdb.Movie {
	out := make([]tmdb.Movie, 0, len(movies))
	for _, m := range movies {
		if f == nil || f.Evaluate(m) {
			out = append(out, m)
		}
	}
	return out
}
