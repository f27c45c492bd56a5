// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/urlx"
)

// Ensure Dedup implements urlx.Filter.
var _ urlx.Filter = (*Dedup)(nil)

// Filter wraps a Bloom filter for URL membership tests.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd reports whether the URL might already be in the filter and
// adds it in the same call.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Dedup drops URLs that were probably returned before. Memory stays
// constant regardless of how many URLs pass through, at the cost of
// occasionally dropping a URL that was never seen. It is safe for
// concurrent use.
type Dedup struct {
	mu sync.Mutex
	f  *Filter
}

// NewDedup creates a Dedup sized for n expected URLs with the given false
// positive rate.
func NewDedup(n uint, fpRate float64) *Dedup {
	return &Dedup{f: NewFilter(n, fpRate)}
}

// Filter returns the URLs not seen before, in input order, and records them.
func (d *Dedup) Filter(urls []string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if d.f.TestAndAdd(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// EstimatedCount returns the approximate number of URLs seen.
func (d *Dedup) EstimatedCount() uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.f.EstimatedCount()
}
