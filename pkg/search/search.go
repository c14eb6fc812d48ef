package search

import (
	"fmt"
	"regexp"

	"github.com/mattsolo1/nbread/pkg/models"
)

// DefaultMaxMatches is how many matches are kept per cell by default.
const DefaultMaxMatches = 3

// InvalidPatternError is returned when the search pattern does not compile
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// Result is a cell whose source matched the pattern
type Result struct {
	Index   int      `json:"index" yaml:"index"`
	Type    string   `json:"type" yaml:"type"`
	Matches []string `json:"matches" yaml:"matches"`
}

type options struct {
	caseSensitive bool
	maxMatches    int
}

// Option configures a search
type Option func(*options)

// CaseSensitive makes the pattern match case-sensitively. Searches ignore
// case by default.
func CaseSensitive(enabled bool) Option {
	return func(o *options) {
		o.caseSensitive = enabled
	}
}

// WithMaxMatches limits how many matches are reported per cell. Values
// below 1 keep the default.
func WithMaxMatches(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMatches = n
		}
	}
}

// Compile builds the regular expression used by Cells.
func Compile(pattern string, opts ...Option) (*regexp.Regexp, error) {
	o := buildOptions(opts)
	expr := pattern
	if !o.caseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}

// Cells searches the concatenated source of every cell, in order.
func Cells(cells []models.Cell, pattern string, opts ...Option) ([]Result, error) {
	o := buildOptions(opts)
	re, err := Compile(pattern, opts...)
	if err != nil {
		return nil, err
	}

	results := []Result{}
	for i := range cells {
		source := cells[i].Source.String()
		matches := re.FindAllString(source, o.maxMatches)
		if matches == nil {
			continue
		}
		results = append(results, Result{
			Index:   i,
			Type:    cells[i].Type(),
			Matches: matches,
		})
	}
	return results, nil
}

func buildOptions(opts []Option) *options {
	o := &options{maxMatches: DefaultMaxMatches}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
