package mock

import "github.com/fwojciec/urlx"

var _ urlx.URLExtractor = (*URLExtractor)(nil)

// URLExtractor is a mock implementation of urlx.URLExtractor.
type URLExtractor struct {
	ExtractFn func(text string) ([]string, error)
}

func (e *URLExtractor) Extract(text string) ([]string, error) {
	return e.ExtractFn(text)
}
