package yaml

import (
	"fmt"
	"math"
	"os"

	"github.com/fwojciec/urlx"
	"gopkg.in/yaml.v3"
)

// NodeOf converts a decoded YAML node into a urlx.Node. Mapping keys keep
// their document order and aliases are expanded. Scalars are typed by their
// resolved tag; integers keep their source digits when they are plain
// decimals.
//
// Expansion stops with EUNSUPPORTED once the result would exceed MaxNodes
// nodes or MaxDepth levels, so a short document of nested aliases cannot
// expand without bound.
func NodeOf(n *yaml.Node) (urlx.Node, error) {
	c := &converter{budget: MaxNodes}
	return c.nodeOf(n, 0)
}

// Limits applied by NodeOf.
const (
	MaxDepth = 10000
	MaxNodes = 1 << 20
)

// converter tracks how many nodes are left to build.
type converter struct {
	budget int
}

func (c *converter) nodeOf(n *yaml.Node, depth int) (urlx.Node, error) {
	if n == nil || n.Kind == 0 {
		return urlx.Null(), nil
	}
	if depth > MaxDepth {
		return urlx.Node{}, urlx.Errorf(urlx.EUNSUPPORTED, "line %d: document nested too deeply", n.Line)
	}
	if n.Kind != yaml.DocumentNode && n.Kind != yaml.AliasNode {
		if c.budget--; c.budget < 0 {
			return urlx.Node{}, urlx.Errorf(urlx.EUNSUPPORTED, "line %d: document expands to more than %d nodes", n.Line, MaxNodes)
		}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return urlx.Null(), nil
		}
		return c.nodeOf(n.Content[0], depth+1)
	case yaml.AliasNode:
		return c.nodeOf(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]urlx.Node, len(n.Content))
		for i, child := range n.Content {
			item, err := c.nodeOf(child, depth+1)
			if err != nil {
				return urlx.Node{}, err
			}
			items[i] = item
		}
		return urlx.Sequence(items...), nil
	case yaml.MappingNode:
		members := make([]urlx.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return urlx.Node{}, fmt.Errorf("line %d: mapping key: %w", n.Content[i].Line, err)
			}
			value, err := c.nodeOf(n.Content[i+1], depth+1)
			if err != nil {
				return urlx.Node{}, err
			}
			members = append(members, urlx.Member{Key: key, Value: value})
		}
		return urlx.Mapping(members...), nil
	case yaml.ScalarNode:
		return scalarOf(n)
	}
	return urlx.Node{}, urlx.Errorf(urlx.EUNSUPPORTED, "line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}

func scalarOf(n *yaml.Node) (urlx.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return urlx.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return urlx.Node{}, err
		}
		return urlx.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range: keep the digits.
			return urlx.Number(n.Value), nil
		}
		return urlx.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return urlx.Node{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return urlx.Node{}, urlx.Errorf(urlx.EUNSUPPORTED, "line %d: non-finite number %s", n.Line, n.Value)
		}
		return urlx.Float(f), nil
	}
	return urlx.String(n.Value), nil
}

// ParseDocument parses data as JSON when it is valid JSON, otherwise as
// YAML. JSON input keeps its number literals verbatim.
func ParseDocument(data []byte) (urlx.Node, error) {
	if n, err := urlx.ParseJSON(string(data)); err == nil {
		return n, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return urlx.Node{}, err
	}
	return NodeOf(&doc)
}

// LoadDocument reads and parses a JSON or YAML document.
func LoadDocument(path string) (urlx.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return urlx.Node{}, fmt.Errorf("read document: %w", err)
	}
	return ParseDocument(data)
}
