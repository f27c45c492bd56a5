// Package etree implements the xml-path strategy for XML documents such as
// sitemaps and feeds.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/urlx"
)

// Ensure Extractor implements urlx.StepExtractor.
var _ urlx.StepExtractor = (*Extractor)(nil)

// Extractor evaluates etree paths (a subset of XPath, e.g. "//url/loc" or
// "//channel/item/link") against XML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses every document in in and returns, for each element matched
// by expr, its trimmed text or, when params.Attr is set, the value of that
// attribute (elements without it are skipped). A sequence input is treated
// as one document per item. Path and XML syntax errors are returned as-is.
func (e *Extractor) Extract(expr string, in urlx.Node, params urlx.Params) (urlx.Node, error) {
	docs, err := documents(in)
	if err != nil {
		return urlx.Node{}, err
	}

	path, err := etree.CompilePath(expr)
	if err != nil {
		return urlx.Node{}, err
	}

	items := []urlx.Node{}
	for _, s := range docs {
		doc := etree.NewDocument()
		if err := doc.ReadFromString(s); err != nil {
			return urlx.Node{}, err
		}

		for _, el := range doc.FindElementsPath(path) {
			if params.Attr != "" {
				if attr := el.SelectAttr(params.Attr); attr != nil {
					items = append(items, urlx.String(attr.Value))
				}
				continue
			}
			items = append(items, urlx.String(strings.TrimSpace(el.Text())))
		}
	}
	return urlx.Sequence(items...), nil
}

func documents(in urlx.Node) ([]string, error) {
	switch in.Kind() {
	case urlx.KindString:
		s, _ := in.Text()
		return []string{s}, nil
	case urlx.KindSequence:
		docs := make([]string, 0, in.Len())
		for i, item := range in.Items() {
			s, ok := item.Text()
			if !ok {
				return nil, urlx.Errorf(urlx.EUNSUPPORTED, "xml-path: unsupported sequence item %d (%s)", i, item.Kind())
			}
			docs = append(docs, s)
		}
		return docs, nil
	}
	return nil, urlx.Errorf(urlx.EUNSUPPORTED, "xml-path: unsupported input (%s)", in.Kind())
}
