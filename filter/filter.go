// Package filter provides post-processing filters for extracted URL lists.
// Every filter implements urlx.Filter and can be combined with Chain.
package filter

import "github.com/fwojciec/urlx"

// Ensure Chain implements urlx.Filter.
var _ urlx.Filter = Chain(nil)

// Chain applies filters in order. It stops as soon as a filter returns an
// empty list, so later filters never see empty input.
type Chain []urlx.Filter

// Filter folds urls through the chain.
func (c Chain) Filter(urls []string) []string {
	for _, f := range c {
		if len(urls) == 0 {
			break
		}
		urls = f.Filter(urls)
	}
	if len(urls) == 0 {
		return []string{}
	}
	return urls
}
