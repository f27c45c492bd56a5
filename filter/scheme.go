package filter

import (
	"strings"

	"github.com/fwojciec/urlx"
)

// nonHTTPSchemes are link schemes that never point at a fetchable page.
var nonHTTPSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// HTTPOnly returns a filter that drops javascript:, mailto:, tel: and data:
// links, which markup steps commonly pick up along with page links.
func HTTPOnly() urlx.Filter {
	return urlx.FilterFunc(func(urls []string) []string {
		out := make([]string, 0, len(urls))
		for _, u := range urls {
			if !isNonHTTPLink(u) {
				out = append(out, u)
			}
		}
		return out
	})
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range nonHTTPSchemes {
		if strings.HasPrefix(href, scheme) {
			return true
		}
	}
	return false
}
