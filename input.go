package urlx

import "strings"

// JoinText returns the text of a string node, or the concatenation of a
// sequence of string nodes. Markup strategies use it to accept both the raw
// document and fragments produced by an earlier step.
func JoinText(in Node) (string, error) {
	switch in.Kind() {
	case KindString:
		s, _ := in.Text()
		return s, nil
	case KindSequence:
		var sb strings.Builder
		for i, item := range in.Items() {
			s, ok := item.Text()
			if !ok {
				return "", Errorf(EUNSUPPORTED, "unsupported sequence item %d (%s), want string", i, item.Kind())
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	}
	return "", Errorf(EUNSUPPORTED, "unsupported input (%s)", in.Kind())
}

// Strings converts a step result into a string list: a string node yields
// one item, a sequence yields one item per element with non-string elements
// JSON-encoded. Falsy results yield an empty list.
func Strings(n Node) []string {
	if !n.Truthy() {
		return []string{}
	}
	switch n.Kind() {
	case KindSequence:
		out := make([]string, 0, n.Len())
		for _, item := range n.Items() {
			if s, ok := item.Text(); ok {
				out = append(out, s)
				continue
			}
			out = append(out, item.String())
		}
		return out
	case KindString:
		s, _ := n.Text()
		return []string{s}
	}
	return []string{n.String()}
}
