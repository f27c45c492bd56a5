package filter

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/urlx"
)

var (
	_ urlx.Filter = (*Dedup)(nil)
	_ urlx.Filter = (*Fingerprint)(nil)
)

// Dedup drops URLs it has already returned. The seen set lives as long as
// the Dedup value, across any number of pipeline runs. It is safe for
// concurrent use.
type Dedup struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDedup creates an empty Dedup.
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

// Filter returns the URLs not seen before, in input order, and records them.
// Repeats within urls are dropped too.
func (d *Dedup) Filter(urls []string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := d.seen[u]; ok {
			continue
		}
		d.seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// Len returns the number of URLs seen.
func (d *Dedup) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// Reset forgets every seen URL.
func (d *Dedup) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = make(map[string]struct{})
}

// Fingerprint is like Dedup but stores a 64-bit xxhash fingerprint per URL
// instead of the URL itself. Two distinct URLs with colliding fingerprints
// are treated as duplicates.
type Fingerprint struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// NewFingerprint creates an empty Fingerprint filter.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{seen: make(map[uint64]struct{})}
}

// Filter returns the URLs whose fingerprint was not seen before, in input
// order, and records them.
func (f *Fingerprint) Filter(urls []string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		h := xxhash.Sum64String(u)
		if _, ok := f.seen[h]; ok {
			continue
		}
		f.seen[h] = struct{}{}
		out = append(out, u)
	}
	return out
}

// Len returns the number of fingerprints recorded.
func (f *Fingerprint) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}
