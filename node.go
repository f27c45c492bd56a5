package urlx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Node.
type Kind uint8

// Node variants.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Member is a key/value pair of a mapping node.
type Member struct {
	Key   string
	Value Node
}

// Node is a value in a JSON-like tree. The zero value is Null.
//
// Sequences and mappings are held by reference: copying a Node shares its
// children, and a Node built from a slice of items shares that slice.
type Node struct {
	kind Kind
	b    bool
	s    string // string value, or number literal
	seq  []Node
	m    *mapping
}

type mapping struct {
	members []Member
	keys    map[string]int
}

// Null returns the null node.
func Null() Node { return Node{} }

// Bool returns a boolean node.
func Bool(b bool) Node { return Node{kind: KindBool, b: b} }

// Int returns a number node holding i.
func Int(i int64) Node { return Node{kind: KindNumber, s: strconv.FormatInt(i, 10)} }

// Float returns a number node holding f.
func Float(f float64) Node {
	return Node{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Number returns a number node holding a numeric literal such as "1" or "2.5e3".
// The literal is kept verbatim so encoding round-trips it unchanged.
func Number(literal string) Node { return Node{kind: KindNumber, s: literal} }

// String returns a string node.
func String(s string) Node { return Node{kind: KindString, s: s} }

// Sequence returns a sequence node holding items.
func Sequence(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{kind: KindSequence, seq: items}
}

// Mapping returns a mapping node. Member order is preserved. A repeated key
// replaces the earlier value but keeps the earlier position.
func Mapping(members ...Member) Node {
	m := &mapping{
		members: make([]Member, 0, len(members)),
		keys:    make(map[string]int, len(members)),
	}
	for _, mem := range members {
		if i, ok := m.keys[mem.Key]; ok {
			m.members[i].Value = mem.Value
			continue
		}
		m.keys[mem.Key] = len(m.members)
		m.members = append(m.members, mem)
	}
	return Node{kind: KindMapping, m: m}
}

// Kind returns the variant of n.
func (n Node) Kind() Kind { return n.kind }

// IsNull reports whether n is null.
func (n Node) IsNull() bool { return n.kind == KindNull }

// Text returns the value of a string node.
func (n Node) Text() (string, bool) {
	if n.kind != KindString {
		return "", false
	}
	return n.s, true
}

// Boolean returns the value of a bool node.
func (n Node) Boolean() (bool, bool) {
	if n.kind != KindBool {
		return false, false
	}
	return n.b, true
}

// Literal returns the numeric literal of a number node.
func (n Node) Literal() (string, bool) {
	if n.kind != KindNumber {
		return "", false
	}
	return n.s, true
}

// Float64 returns the value of a number node as a float64.
func (n Node) Float64() (float64, bool) {
	if n.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 returns the value of a number node holding an integer literal.
func (n Node) Int64() (int64, bool) {
	if n.kind != KindNumber {
		return 0, false
	}
	i, err := strconv.ParseInt(n.s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Len returns the number of items of a sequence or members of a mapping.
// It returns 0 for scalars.
func (n Node) Len() int {
	switch n.kind {
	case KindSequence:
		return len(n.seq)
	case KindMapping:
		return len(n.m.members)
	}
	return 0
}

// Index returns the i-th item of a sequence node.
func (n Node) Index(i int) (Node, bool) {
	if n.kind != KindSequence || i < 0 || i >= len(n.seq) {
		return Node{}, false
	}
	return n.seq[i], true
}

// Lookup returns the value stored under key in a mapping node.
func (n Node) Lookup(key string) (Node, bool) {
	if n.kind != KindMapping {
		return Node{}, false
	}
	i, ok := n.m.keys[key]
	if !ok {
		return Node{}, false
	}
	return n.m.members[i].Value, true
}

// Items returns the items of a sequence node. The slice is shared with n.
func (n Node) Items() []Node {
	if n.kind != KindSequence {
		return nil
	}
	return n.seq
}

// Members returns the members of a mapping node in insertion order.
// The slice is shared with n.
func (n Node) Members() []Member {
	if n.kind != KindMapping {
		return nil
	}
	return n.m.members
}

// Truthy reports whether n is truthy. Null, false, zero, the empty string
// and empty containers are falsy.
func (n Node) Truthy() bool {
	switch n.kind {
	case KindBool:
		return n.b
	case KindNumber:
		f, ok := n.Float64()
		return !ok || f != 0
	case KindString:
		return n.s != ""
	case KindSequence, KindMapping:
		return n.Len() > 0
	}
	return false
}

// Equal reports whether n and o are deeply equal. Numbers compare by value
// and mappings compare without regard to member order.
func (n Node) Equal(o Node) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindNull:
		return true
	case KindBool:
		return n.b == o.b
	case KindNumber:
		a, aok := n.Float64()
		b, bok := o.Float64()
		if aok && bok {
			return a == b
		}
		return n.s == o.s
	case KindString:
		return n.s == o.s
	case KindSequence:
		if len(n.seq) != len(o.seq) {
			return false
		}
		for i := range n.seq {
			if !n.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if n.Len() != o.Len() {
			return false
		}
		for _, mem := range n.m.members {
			v, ok := o.Lookup(mem.Key)
			if !ok || !mem.Value.Equal(v) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts n to plain Go values: nil, bool, json.Number, string,
// []any and map[string]any.
func (n Node) Interface() any {
	switch n.kind {
	case KindBool:
		return n.b
	case KindNumber:
		return json.Number(n.s)
	case KindString:
		return n.s
	case KindSequence:
		out := make([]any, len(n.seq))
		for i, item := range n.seq {
			out[i] = item.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, n.Len())
		for _, mem := range n.m.members {
			out[mem.Key] = mem.Value.Interface()
		}
		return out
	}
	return nil
}

// ValueOf converts a plain Go value into a Node. Keys of Go maps are sorted
// since Go maps carry no order.
func ValueOf(v any) (Node, error) {
	switch v := v.(type) {
	case nil:
		return Null(), nil
	case Node:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(v, 10)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case json.Number:
		return Number(v.String()), nil
	case string:
		return String(v), nil
	case []string:
		items := make([]Node, len(v))
		for i, s := range v {
			items[i] = String(s)
		}
		return Sequence(items...), nil
	case []Node:
		return Sequence(v...), nil
	case []any:
		items := make([]Node, len(v))
		for i, item := range v {
			n, err := ValueOf(item)
			if err != nil {
				return Node{}, err
			}
			items[i] = n
		}
		return Sequence(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			n, err := ValueOf(v[k])
			if err != nil {
				return Node{}, err
			}
			members[i] = Member{Key: k, Value: n}
		}
		return Mapping(members...), nil
	}
	return Node{}, Errorf(EUNSUPPORTED, "unsupported value type %T", v)
}

// String returns the compact JSON encoding of n.
func (n Node) String() string {
	return string(n.AppendJSON(nil, false))
}

// MarshalJSON implements json.Marshaler. Mapping members keep their order.
func (n Node) MarshalJSON() ([]byte, error) {
	return n.AppendJSON(nil, false), nil
}

// UnmarshalJSON implements json.Unmarshaler. Object key order is preserved.
func (n *Node) UnmarshalJSON(data []byte) error {
	v, err := ParseJSON(string(data))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// AppendJSON appends the JSON encoding of n to dst. When spaced is true,
// items are separated by ", " and keys by ": ", the layout most JSON
// serializers emit by default, which regex steps are usually written
// against. HTML characters are not escaped.
func (n Node) AppendJSON(dst []byte, spaced bool) []byte {
	itemSep, keySep := ",", ":"
	if spaced {
		itemSep, keySep = ", ", ": "
	}
	return n.appendJSON(dst, itemSep, keySep)
}

func (n Node) appendJSON(dst []byte, itemSep, keySep string) []byte {
	switch n.kind {
	case KindBool:
		return strconv.AppendBool(dst, n.b)
	case KindNumber:
		return append(dst, n.s...)
	case KindString:
		return appendJSONString(dst, n.s)
	case KindSequence:
		dst = append(dst, '[')
		for i, item := range n.seq {
			if i > 0 {
				dst = append(dst, itemSep...)
			}
			dst = item.appendJSON(dst, itemSep, keySep)
		}
		return append(dst, ']')
	case KindMapping:
		dst = append(dst, '{')
		for i, mem := range n.m.members {
			if i > 0 {
				dst = append(dst, itemSep...)
			}
			dst = appendJSONString(dst, mem.Key)
			dst = append(dst, keySep...)
			dst = mem.Value.appendJSON(dst, itemSep, keySep)
		}
		return append(dst, '}')
	}
	return append(dst, "null"...)
}

func appendJSONString(dst []byte, s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return append(dst, bytes.TrimSuffix(buf.Bytes(), []byte("\n"))...)
}

// MaxJSONDepth is the deepest container nesting ParseJSON accepts, the same
// limit encoding/json applies.
const MaxJSONDepth = 10000

// ParseJSON decodes a JSON document into a Node, preserving object key order.
// Syntax errors from encoding/json are returned as-is. Documents nested deeper
// than MaxJSONDepth fail with EUNSUPPORTED.
func ParseJSON(s string) (Node, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	n, err := decodeNode(dec, 0)
	if err == io.EOF {
		return Node{}, io.ErrUnexpectedEOF
	} else if err != nil {
		return Node{}, err
	}

	// Only whitespace may follow the top-level value.
	if _, err := dec.Token(); err == nil {
		return Node{}, errors.New("json: extra data after top-level value")
	} else if err != io.EOF {
		return Node{}, err
	}
	return n, nil
}

func decodeNode(dec *json.Decoder, depth int) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}

	switch v := tok.(type) {
	case json.Delim:
		if depth++; depth > MaxJSONDepth {
			return Node{}, Errorf(EUNSUPPORTED, "json nested deeper than %d levels", MaxJSONDepth)
		}
		switch v {
		case '{':
			var members []Member
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Node{}, err
				}
				key, _ := kt.(string)
				val, err := decodeNode(dec, depth)
				if err != nil {
					return Node{}, noEOF(err)
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, noEOF(err)
			}
			return Mapping(members...), nil
		case '[':
			items := []Node{}
			for dec.More() {
				item, err := decodeNode(dec, depth)
				if err != nil {
					return Node{}, noEOF(err)
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, noEOF(err)
			}
			return Sequence(items...), nil
		}
		return Node{}, fmt.Errorf("json: unexpected delimiter %q", rune(v))
	case string:
		return String(v), nil
	case json.Number:
		return Number(v.String()), nil
	case bool:
		return Bool(v), nil
	case nil:
		return Null(), nil
	}
	return Node{}, fmt.Errorf("json: unexpected token %v", tok)
}

// noEOF converts an EOF inside a container into an unexpected EOF.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
