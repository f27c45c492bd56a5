package urlx

import "strings"

// Strategy identifies an extraction algorithm. The set of strategies is
// closed; Strategies lists every variant.
type Strategy string

// Supported extraction strategies.
const (
	// StrategyTreePath parses JSON and collects the values whose index path
	// matches a path pattern.
	StrategyTreePath Strategy = "tree-path"

	// StrategyMarkupQuery evaluates an XPath expression against HTML.
	StrategyMarkupQuery Strategy = "markup-query"

	// StrategyRegex collects regular expression matches.
	StrategyRegex Strategy = "regex"

	// StrategyCSS selects HTML elements with a CSS selector.
	StrategyCSS Strategy = "css"

	// StrategyXMLPath evaluates an etree path against XML documents.
	StrategyXMLPath Strategy = "xml-path"
)

// Strategies returns every supported strategy.
func Strategies() []Strategy {
	return []Strategy{
		StrategyTreePath,
		StrategyMarkupQuery,
		StrategyRegex,
		StrategyCSS,
		StrategyXMLPath,
	}
}

// strategyAliases maps the short names used in pipeline files.
var strategyAliases = map[string]Strategy{
	"jpath": StrategyTreePath,
	"xpath": StrategyMarkupQuery,
	"re":    StrategyRegex,
	"xml":   StrategyXMLPath,
}

// ParseStrategy returns the strategy named name. Names are case-insensitive
// and the aliases jpath, xpath, re and xml are accepted.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if s, ok := strategyAliases[name]; ok {
		return s, nil
	}
	if s := Strategy(name); s.Valid() {
		return s, nil
	}
	return "", Errorf(EINVALID, "unknown strategy %q", name)
}

// Valid reports whether s is a supported strategy.
func (s Strategy) Valid() bool {
	for _, v := range Strategies() {
		if s == v {
			return true
		}
	}
	return false
}

// Params holds optional strategy parameters.
type Params struct {
	// ToStr joins every regex match into a single string instead of a list.
	ToStr bool `json:"toStr,omitempty"`

	// Attr selects an attribute value for css and xml-path steps.
	Attr string `json:"attr,omitempty"`
}

// Step is one stage of an extraction pipeline.
type Step struct {
	Strategy Strategy `json:"strategy"`
	Expr     string   `json:"expr"`
	Params   Params   `json:"params"`
}

// Validate returns an error if the step names an unknown strategy or has no expression.
func (s *Step) Validate() error {
	if !s.Strategy.Valid() {
		return Errorf(EINVALID, "unknown strategy %q", s.Strategy)
	}
	if s.Expr == "" {
		return Errorf(EINVALID, "%s step expression required", s.Strategy)
	}
	return nil
}

// StepExtractor runs one extraction strategy. The input is the pipeline text
// (a string node) or the previous step's output.
type StepExtractor interface {
	// Extract evaluates expr against in. Inputs of an unsupported shape fail
	// with EUNSUPPORTED; parser and expression errors are returned as-is.
	Extract(expr string, in Node, params Params) (Node, error)
}

// StepExtractorFunc adapts a function to the StepExtractor interface.
type StepExtractorFunc func(expr string, in Node, params Params) (Node, error)

// Extract calls f(expr, in, params).
func (f StepExtractorFunc) Extract(expr string, in Node, params Params) (Node, error) {
	return f(expr, in, params)
}

// Filter post-processes an extracted URL list.
type Filter interface {
	Filter(urls []string) []string
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(urls []string) []string

// Filter calls f(urls).
func (f FilterFunc) Filter(urls []string) []string {
	return f(urls)
}

// Definition describes an extraction pipeline: the steps run in order and
// the filters applied to a non-empty result.
type Definition struct {
	Steps   []Step
	Filters []Filter
}

// Validate returns an error if any step is invalid.
func (d *Definition) Validate() error {
	for i := range d.Steps {
		if err := d.Steps[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// URLExtractor extracts a URL list from text.
type URLExtractor interface {
	// Extract returns the URLs found in text. Empty text or a pipeline
	// without steps fails with EINVALID; a pipeline that finds nothing
	// returns an empty list.
	Extract(text string) ([]string, error)
}
