package filter

import (
	"regexp"

	"github.com/fwojciec/urlx"
)

var _ urlx.Filter = (*Regex)(nil)

// Regex keeps URLs matched by a regular expression starting at their first
// character. The match need not extend to the end of the URL.
type Regex struct {
	re *regexp.Regexp
}

// NewRegex creates a Regex filter from a compiled expression.
func NewRegex(re *regexp.Regexp) *Regex {
	return &Regex{re: re}
}

// CompileRegex compiles pattern and creates a Regex filter from it.
func CompileRegex(pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, urlx.Errorf(urlx.EINVALID, "invalid url pattern %q: %v", pattern, err)
	}
	return NewRegex(re), nil
}

// Filter returns the URLs matching the expression.
func (r *Regex) Filter(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if loc := r.re.FindStringIndex(u); loc != nil && loc[0] == 0 {
			out = append(out, u)
		}
	}
	return out
}
