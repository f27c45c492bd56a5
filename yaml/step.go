package yaml

import (
	"github.com/fwojciec/urlx"
	"gopkg.in/yaml.v3"
)

// Step is a pipeline step as written in a pipeline file. It accepts the
// tuple form [strategy, expr] or [strategy, expr, params] as well as the
// mapping form {strategy, expr, params}. Strategy aliases are resolved.
type Step urlx.Step

type params struct {
	ToStr bool   `yaml:"toStr"`
	Attr  string `yaml:"attr"`
}

type stepMapping struct {
	Strategy string `yaml:"strategy"`
	Expr     string `yaml:"expr"`
	Params   params `yaml:"params"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	var m stepMapping
	switch value.Kind {
	case yaml.SequenceNode:
		if n := len(value.Content); n < 2 || n > 3 {
			return urlx.Errorf(urlx.EINVALID, "line %d: step needs 2 or 3 elements, got %d", value.Line, n)
		}
		if err := value.Content[0].Decode(&m.Strategy); err != nil {
			return err
		}
		if err := value.Content[1].Decode(&m.Expr); err != nil {
			return err
		}
		if len(value.Content) == 3 {
			if err := value.Content[2].Decode(&m.Params); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		if err := value.Decode(&m); err != nil {
			return err
		}
	default:
		return urlx.Errorf(urlx.EINVALID, "line %d: step must be a sequence or a mapping", value.Line)
	}

	strategy, err := urlx.ParseStrategy(m.Strategy)
	if err != nil {
		return err
	}
	*s = Step{
		Strategy: strategy,
		Expr:     m.Expr,
		Params:   urlx.Params{ToStr: m.Params.ToStr, Attr: m.Params.Attr},
	}
	return nil
}
