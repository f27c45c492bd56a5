// Package pipeline chains extraction steps and filters into a URL extractor.
package pipeline

import (
	"context"

	"github.com/fwojciec/urlx"
	"github.com/fwojciec/urlx/etree"
	"github.com/fwojciec/urlx/filter"
	"github.com/fwojciec/urlx/goquery"
	"github.com/fwojciec/urlx/htmlquery"
	"github.com/fwojciec/urlx/json"
	"github.com/fwojciec/urlx/regex"
	"golang.org/x/sync/errgroup"
)

// Ensure Pipeline implements urlx.URLExtractor.
var _ urlx.URLExtractor = (*Pipeline)(nil)

// Pipeline runs a fixed list of extraction steps over text and cleans up
// the result with a chain of filters. The step list and dispatch table are
// immutable after New; a Pipeline is safe for concurrent use as long as its
// filters are.
type Pipeline struct {
	steps    []urlx.Step
	filters  filter.Chain
	dispatch map[urlx.Strategy]urlx.StepExtractor
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithStepExtractor replaces the implementation used for strategy kind.
// It fails for kinds outside the closed strategy set.
func WithStepExtractor(kind urlx.Strategy, impl urlx.StepExtractor) Option {
	return func(p *Pipeline) error {
		if !kind.Valid() {
			return urlx.Errorf(urlx.EINVALID, "unknown extraction strategy %q", kind)
		}
		p.dispatch[kind] = impl
		return nil
	}
}

// WithStepWrapper wraps the implementation of every strategy registered so
// far, e.g. with logging. Later options see the wrapped implementations.
func WithStepWrapper(wrap func(kind urlx.Strategy, next urlx.StepExtractor) urlx.StepExtractor) Option {
	return func(p *Pipeline) error {
		for kind, next := range p.dispatch {
			p.dispatch[kind] = wrap(kind, next)
		}
		return nil
	}
}

// New validates def and creates a Pipeline with the default implementation
// registered for every strategy.
func New(def urlx.Definition, opts ...Option) (*Pipeline, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		steps:   append([]urlx.Step(nil), def.Steps...),
		filters: filter.Chain(append([]urlx.Filter(nil), def.Filters...)),
		dispatch: map[urlx.Strategy]urlx.StepExtractor{
			urlx.StrategyTreePath:    json.NewTreePathExtractor(),
			urlx.StrategyMarkupQuery: htmlquery.NewExtractor(),
			urlx.StrategyRegex:       regex.NewExtractor(),
			urlx.StrategyCSS:         goquery.NewExtractor(),
			urlx.StrategyXMLPath:     etree.NewExtractor(),
		},
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Steps returns a copy of the pipeline's steps.
func (p *Pipeline) Steps() []urlx.Step {
	return append([]urlx.Step(nil), p.steps...)
}

// Extract runs the pipeline's steps over text.
func (p *Pipeline) Extract(text string) ([]string, error) {
	return p.ExtractWith(text, nil)
}

// ExtractWith runs steps over text instead of the pipeline's own steps.
// An empty steps falls back to the pipeline's steps. Override steps are
// validated like the definition's steps before any of them runs.
//
// The first step consumes text and every later step consumes the output of
// the one before. As soon as a step produces an empty or falsy result the
// remaining steps are skipped and an empty list is returned. Step errors are
// returned unwrapped.
func (p *Pipeline) ExtractWith(text string, steps []urlx.Step) ([]string, error) {
	if text == "" {
		return nil, urlx.Errorf(urlx.EINVALID, "extraction input is empty")
	}
	if len(steps) == 0 {
		steps = p.steps
	} else {
		for i := range steps {
			if err := steps[i].Validate(); err != nil {
				return nil, err
			}
		}
	}
	if len(steps) == 0 {
		return nil, urlx.Errorf(urlx.EINVALID, "no extraction steps configured")
	}

	cur := urlx.String(text)
	for i := range steps {
		step := &steps[i]
		ext, ok := p.dispatch[step.Strategy]
		if !ok {
			return nil, urlx.Errorf(urlx.EINVALID, "step %d: unknown extraction strategy %q", i, step.Strategy)
		}
		out, err := ext.Extract(step.Expr, cur, step.Params)
		if err != nil {
			return nil, err
		}
		if !out.Truthy() {
			return []string{}, nil
		}
		cur = out
	}
	return p.ProcessURLs(urlx.Strings(cur)), nil
}

// ProcessURLs applies the pipeline's filters in order, stopping as soon as
// one of them returns an empty list.
func (p *Pipeline) ProcessURLs(urls []string) []string {
	return p.filters.Filter(urls)
}

// ExtractAll runs the pipeline over every text. See ExtractAll.
func (p *Pipeline) ExtractAll(ctx context.Context, texts []string, concurrency int) ([][]string, error) {
	return ExtractAll(ctx, p, texts, concurrency)
}

// ExtractAll runs ext over every text with at most concurrency texts in
// flight (unlimited when concurrency < 1). Results are aligned with texts.
// The first error cancels the remaining work and is returned.
func ExtractAll(ctx context.Context, ext urlx.URLExtractor, texts []string, concurrency int) ([][]string, error) {
	results := make([][]string, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			urls, err := ext.Extract(text)
			if err != nil {
				return err
			}
			results[i] = urls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
