// Package regex implements the regular expression extraction strategy.
package regex

import (
	"regexp"
	"strings"
	"sync"

	"github.com/fwojciec/urlx"
)

// Ensure Extractor implements urlx.StepExtractor.
var _ urlx.StepExtractor = (*Extractor)(nil)

// Extractor collects all matches of a regular expression. Compiled
// expressions are cached, so one Extractor should be reused across calls.
// It is safe for concurrent use.
type Extractor struct {
	cache sync.Map // expr -> *regexp.Regexp
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract applies expr to in with find-all semantics. Each match yields the
// whole match when expr has no groups, the group text when it has one, and
// a sequence of group texts when it has several.
//
// A string input is matched as-is. Sequences and mappings are matched
// against their JSON encoding (", " and ": " separators). With
// params.ToStr the captured text of every match is joined into a single
// string, which lets a later tree-path step parse a JSON value spread over
// several matches.
func (e *Extractor) Extract(expr string, in urlx.Node, params urlx.Params) (urlx.Node, error) {
	var text string
	switch in.Kind() {
	case urlx.KindString:
		text, _ = in.Text()
	case urlx.KindSequence, urlx.KindMapping:
		text = string(in.AppendJSON(nil, true))
	default:
		return urlx.Node{}, urlx.Errorf(urlx.EUNSUPPORTED, "regex: unsupported input (%s)", in.Kind())
	}

	re, err := e.compile(expr)
	if err != nil {
		return urlx.Node{}, err
	}

	matches := re.FindAllStringSubmatch(text, -1)
	groups := re.NumSubexp()

	if params.ToStr {
		var sb strings.Builder
		for _, m := range matches {
			if groups == 0 {
				sb.WriteString(m[0])
				continue
			}
			for _, g := range m[1:] {
				sb.WriteString(g)
			}
		}
		return urlx.String(sb.String()), nil
	}

	items := make([]urlx.Node, 0, len(matches))
	for _, m := range matches {
		switch groups {
		case 0:
			items = append(items, urlx.String(m[0]))
		case 1:
			items = append(items, urlx.String(m[1]))
		default:
			sub := make([]urlx.Node, groups)
			for i, g := range m[1:] {
				sub[i] = urlx.String(g)
			}
			items = append(items, urlx.Sequence(sub...))
		}
	}
	return urlx.Sequence(items...), nil
}

func (e *Extractor) compile(expr string) (*regexp.Regexp, error) {
	if re, ok := e.cache.Load(expr); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	e.cache.Store(expr, re)
	return re, nil
}
