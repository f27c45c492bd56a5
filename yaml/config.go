// Package yaml reads pipeline definitions, field maps and documents written
// in YAML (or JSON, which YAML accepts).
package yaml

import (
	"fmt"
	"os"

	"github.com/fwojciec/urlx"
	"github.com/fwojciec/urlx/bloom"
	"github.com/fwojciec/urlx/filter"
	"gopkg.in/yaml.v3"
)

// Deduplication modes accepted by Filters.Dedup.
const (
	DedupNone        = "none"
	DedupExact       = "exact"
	DedupFingerprint = "fingerprint"
	DedupBloom       = "bloom"
)

// Bloom filter sizing used when a pipeline file does not set it.
const (
	DefaultBloomCapacity = 100000
	DefaultBloomFPRate   = 0.001
)

// Config is a pipeline file.
//
//	steps:
//	  - [regex, "data=(.+?)\n", {toStr: true}]
//	  - {strategy: tree-path, expr: "/article/\\d+/url"}
//	filters:
//	  dedup: exact
//	  allowDomains: [www.test.com]
//	  prefix: https://www.test.com/
type Config struct {
	Steps   []Step  `yaml:"steps"`
	Filters Filters `yaml:"filters"`
}

// Filters is the filters section of a pipeline file. Filters run in a fixed
// order: dedup, http-only, domain, match, then URL assembly.
type Filters struct {
	Dedup            string   `yaml:"dedup"`
	BloomCapacity    uint     `yaml:"bloomCapacity"`
	BloomFPRate      float64  `yaml:"bloomFPRate"`
	HTTPOnly         bool     `yaml:"httpOnly"`
	AllowDomains     []string `yaml:"allowDomains"`
	DenyDomains      []string `yaml:"denyDomains"`
	RegisteredDomain bool     `yaml:"registeredDomain"`
	Match            string   `yaml:"match"`
	Prefix           string   `yaml:"prefix"`
	Template         string   `yaml:"template"`
}

// LoadConfig reads a pipeline file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse pipeline file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a pipeline file.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefinition reads a pipeline file and builds its definition.
func LoadDefinition(path string) (urlx.Definition, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return urlx.Definition{}, err
	}
	return cfg.Definition()
}

// ParseDefinition decodes a pipeline file and builds its definition.
func ParseDefinition(data []byte) (urlx.Definition, error) {
	cfg, err := ParseConfig(data)
	if err != nil {
		return urlx.Definition{}, err
	}
	return cfg.Definition()
}

// Definition converts the file into a pipeline definition, constructing
// fresh filter state.
func (c *Config) Definition() (urlx.Definition, error) {
	def := urlx.Definition{Steps: make([]urlx.Step, len(c.Steps))}
	for i, s := range c.Steps {
		def.Steps[i] = urlx.Step(s)
	}
	if err := def.Validate(); err != nil {
		return urlx.Definition{}, err
	}

	filters, err := c.Filters.Build()
	if err != nil {
		return urlx.Definition{}, err
	}
	def.Filters = filters
	return def, nil
}

// Build constructs the configured filters in application order.
func (f *Filters) Build() ([]urlx.Filter, error) {
	var filters []urlx.Filter

	switch f.Dedup {
	case "", DedupNone:
	case DedupExact:
		filters = append(filters, filter.NewDedup())
	case DedupFingerprint:
		filters = append(filters, filter.NewFingerprint())
	case DedupBloom:
		capacity, fpRate := f.BloomCapacity, f.BloomFPRate
		if capacity == 0 {
			capacity = DefaultBloomCapacity
		}
		if fpRate == 0 {
			fpRate = DefaultBloomFPRate
		}
		if fpRate < 0 || fpRate >= 1 {
			return nil, urlx.Errorf(urlx.EINVALID, "bloom false positive rate must be in (0, 1), got %v", fpRate)
		}
		filters = append(filters, bloom.NewDedup(capacity, fpRate))
	default:
		return nil, urlx.Errorf(urlx.EINVALID, "unknown dedup mode %q", f.Dedup)
	}

	if f.HTTPOnly {
		filters = append(filters, filter.HTTPOnly())
	}

	if len(f.AllowDomains) > 0 || len(f.DenyDomains) > 0 {
		var opts []filter.DomainOption
		if f.RegisteredDomain {
			opts = append(opts, filter.MatchRegisteredDomain())
		}
		filters = append(filters, filter.NewDomain(f.AllowDomains, f.DenyDomains, opts...))
	}

	if f.Match != "" {
		re, err := filter.CompileRegex(f.Match)
		if err != nil {
			return nil, err
		}
		filters = append(filters, re)
	}

	if f.Prefix != "" || f.Template != "" {
		a, err := filter.NewAssembler(f.Prefix, f.Template)
		if err != nil {
			return nil, err
		}
		filters = append(filters, a)
	}

	return filters, nil
}
