package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinefeed/tmdb"
)

// DefaultCacheSize is the number of compiled programs kept by NewCompiler
const DefaultCacheSize = 64

// Filter is a compiled display filter over movies
type Filter struct {
	expression string
	program    *vm.Program
	env        func(tmdb.Movie) map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache sets the number of compiled filters kept in the LRU cache. A size
// of zero disables caching.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Filter](size)
		} else {
			c.cache = nil
		}
	}
}

// WithCustomFunctions adds helper functions to the expression environment
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// WithClock replaces the time source used by date helpers
func WithClock(now func() time.Time) CompilerOption {
	return func(c *Compiler) {
		c.now = now
		addDateHelpers(c.helpers, now)
	}
}

// Compiler compiles expressions into filters
type Compiler struct {
	helpers map[string]any
	now     func() time.Time
	cache   *lruCache[*Filter]
}

// NewCompiler creates a compiler with a DefaultCacheSize cache
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helpers: make(map[string]any, 8),
		now:     time.Now,
		cache:   newLRUCache[*Filter](DefaultCacheSize),
	}
	addStringHelpers(c.helpers)
	addDateHelpers(c.helpers, c.now)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles expression. The expression must evaluate to a boolean and
// may only reference movie fields and helpers.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.environment(tmdb.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{expression: expression, program: program, env: c.environment}
	if c.cache != nil {
		c.cache.Put(expression, f)
	}
	return f, nil
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expression
}

// environment builds the variables visible to an expression for movie
func (c *Compiler) environment(movie tmdb.Movie) map[string]any {
	env := make(map[string]any, len(c.helpers)+8)
	maps.Copy(env, c.helpers)

	released, _ := movie.Released()
	env["ID"] = movie.ID
	env["Title"] = movie.Title
	env["Overview"] = movie.Overview
	env["VoteAverage"] = movie.VoteAverage
	env["VoteCount"] = movie.VoteCount
	env["Popularity"] = movie.Popularity
	env["ReleaseDate"] = released
	env["Year"] = movie.Year()
	env["HasPoster"] = movie.HasPoster()
	return env
}

func addStringHelpers(env map[string]any) {
	env["containsFold"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefixFold"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
}

func addDateHelpers(env map[string]any, now func() time.Time) {
	env["daysSince"] = func(t time.Time) int {
		if t.IsZero() {
			return -1
		}
		return int(now().Sub(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return now().AddDate(0, 0, -days)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return now().AddDate(-years, 0, 0)
	}
}
