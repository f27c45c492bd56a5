package yaml

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/urlx"
	"gopkg.in/yaml.v3"
)

type field struct {
	Op      string    `yaml:"op"`
	Path    string    `yaml:"jpath"`
	Default yaml.Node `yaml:"default"`
}

// ParseFieldMap decodes a field map:
//
//	pn:    {op: get, jpath: /data/pn}
//	isEnd: {op: get, jpath: /data/isEnd, default: false}
//	urls:  {op: find, jpath: '/data/list/\d+/url'}
func ParseFieldMap(data []byte) (urlx.FieldMap, error) {
	var raw map[string]field
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	fields := make(urlx.FieldMap, len(raw))
	for name, f := range raw {
		op := urlx.Op(strings.ToLower(f.Op))
		if op != urlx.OpGet && op != urlx.OpFind {
			return nil, urlx.Errorf(urlx.EINVALID, "field %q: unknown op %q", name, f.Op)
		}
		def := urlx.Null()
		if f.Default.Kind != 0 {
			n, err := NodeOf(&f.Default)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			def = n
		}
		fields[name] = urlx.Field{Op: op, Path: f.Path, Default: def}
	}
	return fields, nil
}

// LoadFieldMap reads a field map file.
func LoadFieldMap(path string) (urlx.FieldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field map: %w", err)
	}
	fields, err := ParseFieldMap(data)
	if err != nil {
		return nil, fmt.Errorf("parse field map %s: %w", path, err)
	}
	return fields, nil
}
