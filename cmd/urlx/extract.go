package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/urlx"
	"github.com/fwojciec/urlx/pipeline"
	urlxslog "github.com/fwojciec/urlx/slog"
	urlxyaml "github.com/fwojciec/urlx/yaml"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	cfg := &urlxyaml.Config{}
	if c.Config != "" {
		var err error
		if cfg, err = urlxyaml.LoadConfig(c.Config); err != nil {
			return fail(deps, err)
		}
	}
	if err := c.apply(cfg); err != nil {
		return fail(deps, err)
	}

	def, err := cfg.Definition()
	if err != nil {
		return fail(deps, err)
	}

	var opts []pipeline.Option
	if deps.Logger != nil {
		logger := deps.Logger
		opts = append(opts, pipeline.WithStepWrapper(func(kind urlx.Strategy, next urlx.StepExtractor) urlx.StepExtractor {
			return urlxslog.NewLoggingStepExtractor(kind, next, logger)
		}))
	}
	p, err := pipeline.New(def, opts...)
	if err != nil {
		return fail(deps, err)
	}

	var ext urlx.URLExtractor = p
	if deps.Logger != nil {
		ext = urlxslog.NewLoggingURLExtractor(p, deps.Logger)
	}

	texts, err := c.inputs(deps)
	if err != nil {
		return fail(deps, err)
	}

	results, err := pipeline.ExtractAll(deps.Ctx, ext, texts, c.Concurrency)
	if err != nil {
		return fail(deps, err)
	}
	for _, urls := range results {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
	}
	return nil
}

// apply overlays command-line flags on the pipeline file.
func (c *ExtractCmd) apply(cfg *urlxyaml.Config) error {
	if len(c.Steps) > 0 {
		cfg.Steps = cfg.Steps[:0]
		for _, s := range c.Steps {
			step, err := parseStep(s)
			if err != nil {
				return err
			}
			cfg.Steps = append(cfg.Steps, urlxyaml.Step(step))
		}
	}

	f := &cfg.Filters
	if c.Dedup != "" {
		f.Dedup = c.Dedup
	}
	f.HTTPOnly = f.HTTPOnly || c.HTTPOnly
	f.AllowDomains = append(f.AllowDomains, c.AllowDomains...)
	f.DenyDomains = append(f.DenyDomains, c.DenyDomains...)
	f.RegisteredDomain = f.RegisteredDomain || c.RegisteredDomain
	if c.Match != "" {
		f.Match = c.Match
	}
	if c.Prefix != "" {
		f.Prefix = c.Prefix
	}
	if c.Template != "" {
		f.Template = c.Template
	}
	return nil
}

func (c *ExtractCmd) inputs(deps *Dependencies) ([]string, error) {
	if len(c.Files) == 0 {
		data, err := readInput(deps, "")
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []string{string(data)}, nil
	}

	texts := make([]string, len(c.Files))
	for i, path := range c.Files {
		data, err := readInput(deps, path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		texts[i] = string(data)
	}
	return texts, nil
}

// parseStep parses STRATEGY[,toStr][,attr:NAME]=EXPR. The expression is
// everything after the first "=", so it may contain "=" itself.
func parseStep(s string) (urlx.Step, error) {
	head, expr, ok := strings.Cut(s, "=")
	if !ok {
		return urlx.Step{}, urlx.Errorf(urlx.EINVALID, "step %q: want STRATEGY=EXPR", s)
	}

	opts := strings.Split(head, ",")
	strategy, err := urlx.ParseStrategy(opts[0])
	if err != nil {
		return urlx.Step{}, err
	}

	step := urlx.Step{Strategy: strategy, Expr: expr}
	for _, opt := range opts[1:] {
		switch name, value, _ := strings.Cut(strings.TrimSpace(opt), ":"); strings.ToLower(name) {
		case "tostr":
			step.Params.ToStr = true
		case "attr":
			step.Params.Attr = value
		default:
			return urlx.Step{}, urlx.Errorf(urlx.EINVALID, "step %q: unknown option %q", s, opt)
		}
	}
	if err := step.Validate(); err != nil {
		return urlx.Step{}, err
	}
	return step, nil
}
