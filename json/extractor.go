// Package json implements the tree-path extraction strategy over JSON text.
package json

import "github.com/fwojciec/urlx"

// Ensure TreePathExtractor implements urlx.StepExtractor.
var _ urlx.StepExtractor = (*TreePathExtractor)(nil)

// TreePathExtractor parses JSON input, indexes it and returns every value
// whose path matches the step's path pattern.
type TreePathExtractor struct{}

// NewTreePathExtractor creates a new TreePathExtractor.
func NewTreePathExtractor() *TreePathExtractor {
	return &TreePathExtractor{}
}

// Extract decodes in and returns the values matching the path pattern expr
// as a sequence (empty when nothing matches).
//
// A string input is parsed as one JSON document. A sequence input is
// indexed as a list whose string items are each parsed as JSON and whose
// other items are kept as they are. A mapping is indexed directly.
func (e *TreePathExtractor) Extract(expr string, in urlx.Node, _ urlx.Params) (urlx.Node, error) {
	data, err := Decode(in)
	if err != nil {
		return urlx.Node{}, err
	}

	matches, err := urlx.NewIndex(data).Find(expr, nil)
	if err != nil {
		return urlx.Node{}, err
	}
	return urlx.Sequence(matches...), nil
}

// Decode turns a step input into the tree to index. JSON syntax errors are
// returned unwrapped.
func Decode(in urlx.Node) (urlx.Node, error) {
	switch in.Kind() {
	case urlx.KindString:
		s, _ := in.Text()
		return urlx.ParseJSON(s)
	case urlx.KindSequence:
		items := make([]urlx.Node, 0, in.Len())
		for _, item := range in.Items() {
			s, ok := item.Text()
			if !ok {
				items = append(items, item)
				continue
			}
			n, err := urlx.ParseJSON(s)
			if err != nil {
				return urlx.Node{}, err
			}
			items = append(items, n)
		}
		return urlx.Sequence(items...), nil
	case urlx.KindMapping:
		return in, nil
	}
	return urlx.Node{}, urlx.Errorf(urlx.EUNSUPPORTED, "tree-path: unsupported input (%s)", in.Kind())
}
