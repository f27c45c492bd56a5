package filter

import (
	"net/url"
	"strings"

	"github.com/fwojciec/urlx"
)

// Slot is the substitution slot of an Assembler template.
const Slot = "{}"

var _ urlx.Filter = (*Assembler)(nil)

// Assembler turns extracted values into absolute URLs, either by resolving
// them against a prefix URL or by substituting them into a template.
type Assembler struct {
	base     *url.URL
	template string
}

// NewAssembler creates an Assembler. A non-empty prefix takes precedence
// over template. A template must contain exactly one "{}" slot. With
// neither set, values pass through unchanged.
func NewAssembler(prefix, template string) (*Assembler, error) {
	a := &Assembler{}
	if prefix != "" {
		base, err := url.Parse(prefix)
		if err != nil {
			return nil, urlx.Errorf(urlx.EINVALID, "invalid url prefix %q: %v", prefix, err)
		}
		a.base = base
		return a, nil
	}
	if template != "" {
		if n := strings.Count(template, Slot); n != 1 {
			return nil, urlx.Errorf(urlx.EINVALID, "url template %q must contain one %s slot, found %d", template, Slot, n)
		}
		a.template = template
	}
	return a, nil
}

// Filter assembles every value. Values that do not parse as URL references
// are left unchanged when resolving against a prefix.
func (a *Assembler) Filter(urls []string) []string {
	switch {
	case a.base != nil:
		out := make([]string, len(urls))
		for i, u := range urls {
			ref, err := url.Parse(u)
			if err != nil {
				out[i] = u
				continue
			}
			out[i] = a.base.ResolveReference(ref).String()
		}
		return out
	case a.template != "":
		out := make([]string, len(urls))
		for i, u := range urls {
			out[i] = strings.Replace(a.template, Slot, u, 1)
		}
		return out
	}
	return urls
}
