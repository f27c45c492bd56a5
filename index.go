package urlx

import (
	"regexp"
	"strconv"
	"strings"
)

// Separator joins the segments of a path string.
const Separator = "/"

// Index is a flat path -> node mapping built over a tree. Every node
// reachable from the root is recorded, the root itself under the empty path.
// An Index is read-only after construction and safe for concurrent use.
type Index struct {
	root  Node
	paths []string
	nodes map[string]Node
}

// NewIndex builds an index over root with a depth-first traversal: the node
// first, then mapping members in insertion order or sequence items in order.
// The index references the tree's nodes; it does not copy them.
//
// Every path is stored in full, so memory grows with the sum of all path
// lengths, quadratic in nesting depth. ParseJSON caps depth at MaxJSONDepth;
// trees built by hand should stay well below that.
func NewIndex(root Node) *Index {
	x := &Index{
		root:  root,
		nodes: make(map[string]Node),
	}
	x.build("", root)
	return x
}

func (x *Index) build(path string, n Node) {
	// Keys containing the separator can collide with a nested path;
	// the later node wins and the path keeps its first position.
	if _, ok := x.nodes[path]; !ok {
		x.paths = append(x.paths, path)
	}
	x.nodes[path] = n

	switch n.Kind() {
	case KindMapping:
		for _, mem := range n.Members() {
			x.build(path+Separator+mem.Key, mem.Value)
		}
	case KindSequence:
		for i, item := range n.Items() {
			x.build(path+Separator+strconv.Itoa(i), item)
		}
	}
}

// Root returns the indexed tree.
func (x *Index) Root() Node { return x.root }

// Len returns the number of indexed paths.
func (x *Index) Len() int { return len(x.paths) }

// Paths returns the indexed paths in construction order.
func (x *Index) Paths() []string {
	out := make([]string, len(x.paths))
	copy(out, x.paths)
	return out
}

// Get returns the node at path, or def if the path does not resolve.
// Indexed paths are answered directly; other spellings of a valid path
// (e.g. "/list/01") are resolved by descending the tree as Extract does.
func (x *Index) Get(path string, def Node) Node {
	if n, ok := x.nodes[path]; ok {
		return n
	}
	return Extract(x.root, path, def)
}

// Find returns every node whose path matches pattern, a regular expression
// anchored at the start of the path but not at its end. Results follow index
// order. When nothing matches, def is returned if it is non-empty, otherwise
// an empty slice.
//
// Find only fails when pattern does not compile.
func (x *Index) Find(pattern string, def []Node) ([]Node, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid path pattern %q: %v", pattern, err)
	}
	return x.FindRegexp(re, def), nil
}

// FindRegexp is like Find with a precompiled expression. A path matches when
// re matches at its first byte.
func (x *Index) FindRegexp(re *regexp.Regexp, def []Node) []Node {
	matches := []Node{}
	for _, path := range x.paths {
		if loc := re.FindStringIndex(path); loc != nil && loc[0] == 0 {
			matches = append(matches, x.nodes[path])
		}
	}
	if len(matches) > 0 {
		return matches
	}
	if len(def) > 0 {
		return def
	}
	return matches
}

// Map resolves every field of fields independently. A get field yields the
// node at its path or its default. A find field yields a sequence of the
// matches, or its default when nothing matched and the default is truthy,
// or an empty sequence.
func (x *Index) Map(fields FieldMap) (map[string]Node, error) {
	out := make(map[string]Node, len(fields))
	for name, f := range fields {
		switch f.Op.normalize() {
		case OpGet:
			out[name] = x.Get(f.Path, f.Default)
		case OpFind:
			matches, err := x.Find(f.Path, nil)
			if err != nil {
				return nil, err
			}
			switch {
			case len(matches) > 0:
				out[name] = Sequence(matches...)
			case f.Default.Truthy():
				out[name] = f.Default
			default:
				out[name] = Sequence()
			}
		default:
			return nil, Errorf(EINVALID, "field %q: unknown op %q", name, f.Op)
		}
	}
	return out, nil
}

// Extract descends data along path without building an index. A segment
// addresses a sequence item by its decimal position and a mapping member by
// its key. Any miss (absent key, index out of range, non-numeric segment on
// a sequence, descent into a scalar) returns def.
func Extract(data Node, path string, def Node) Node {
	segments := strings.Split(path, Separator)[1:]
	cur := data
	for _, seg := range segments {
		switch cur.Kind() {
		case KindSequence:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return def
			}
			next, ok := cur.Index(i)
			if !ok {
				return def
			}
			cur = next
		case KindMapping:
			next, ok := cur.Lookup(seg)
			if !ok {
				return def
			}
			cur = next
		default:
			return def
		}
	}
	return cur
}

// Op is a field-map operation.
type Op string

// Field-map operations.
const (
	OpGet  Op = "get"
	OpFind Op = "find"
)

func (op Op) normalize() Op {
	return Op(strings.ToLower(string(op)))
}

// Field declares how one output field of a field map is extracted.
type Field struct {
	Op      Op     `json:"op"`
	Path    string `json:"jpath"`
	Default Node   `json:"default"`
}

// FieldMap maps output field names to their extraction.
type FieldMap map[string]Field
