package mock

import "github.com/fwojciec/urlx"

var _ urlx.Filter = (*Filter)(nil)

// Filter is a mock implementation of urlx.Filter.
type Filter struct {
	FilterFn func(urls []string) []string
}

func (f *Filter) Filter(urls []string) []string {
	return f.FilterFn(urls)
}
