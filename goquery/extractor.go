// Package goquery implements the css extraction strategy using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/urlx"
)

// Ensure Extractor implements urlx.StepExtractor.
var _ urlx.StepExtractor = (*Extractor)(nil)

// Extractor selects HTML elements with CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses in as HTML (a sequence is concatenated first) and returns,
// for each element matching the selector expr in document order, the value
// of params.Attr or, when no attribute is requested, the element's outer
// HTML. Elements lacking the attribute are skipped. Selector syntax errors
// are returned as-is.
func (e *Extractor) Extract(expr string, in urlx.Node, params urlx.Params) (urlx.Node, error) {
	text, err := urlx.JoinText(in)
	if err != nil {
		return urlx.Node{}, err
	}

	// goquery silently matches nothing on a bad selector; compile first so
	// the error surfaces.
	matcher, err := cascadia.Compile(expr)
	if err != nil {
		return urlx.Node{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return urlx.Node{}, err
	}

	items := []urlx.Node{}
	var outerErr error
	doc.FindMatcher(matcher).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if params.Attr != "" {
			if v, ok := sel.Attr(params.Attr); ok {
				items = append(items, urlx.String(v))
			}
			return true
		}

		html, err := goquery.OuterHtml(sel)
		if err != nil {
			outerErr = err
			return false
		}
		items = append(items, urlx.String(html))
		return true
	})
	if outerErr != nil {
		return urlx.Node{}, outerErr
	}
	return urlx.Sequence(items...), nil
}
