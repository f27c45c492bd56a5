// Package htmlquery implements the markup-query strategy: XPath 1.0
// expressions evaluated against HTML documents.
package htmlquery

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/urlx"
)

// Ensure Extractor implements urlx.StepExtractor.
var _ urlx.StepExtractor = (*Extractor)(nil)

// Extractor evaluates XPath expressions against HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses in as HTML and evaluates expr against the document.
// A sequence input is concatenated into one document first.
//
// Node-set results yield one string per node: attribute, text and comment
// nodes give their value, element nodes their outer HTML so a later step
// can query them again. Scalar results (string(), count(), boolean
// expressions) yield a single item. Compilation errors are returned as-is.
func (e *Extractor) Extract(expr string, in urlx.Node, _ urlx.Params) (urlx.Node, error) {
	text, err := urlx.JoinText(in)
	if err != nil {
		return urlx.Node{}, err
	}

	compiled, err := xpath.Compile(expr)
	if err != nil {
		return urlx.Node{}, err
	}

	doc, err := htmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return urlx.Node{}, err
	}

	switch v := compiled.Evaluate(htmlquery.CreateXPathNavigator(doc)).(type) {
	case *xpath.NodeIterator:
		items := []urlx.Node{}
		for v.MoveNext() {
			nav, ok := v.Current().(*htmlquery.NodeNavigator)
			if !ok {
				continue
			}
			items = append(items, urlx.String(nodeValue(nav)))
		}
		return urlx.Sequence(items...), nil
	case string:
		return urlx.Sequence(urlx.String(v)), nil
	case float64:
		return urlx.Sequence(urlx.Float(v)), nil
	case bool:
		return urlx.Sequence(urlx.Bool(v)), nil
	}
	return urlx.Sequence(), nil
}

func nodeValue(nav *htmlquery.NodeNavigator) string {
	switch nav.NodeType() {
	case xpath.ElementNode:
		return htmlquery.OutputHTML(nav.Current(), true)
	case xpath.RootNode:
		return htmlquery.OutputHTML(nav.Current(), false)
	}
	return nav.Value()
}
