package catalog

// Kind identifies the shape of a Node.
type Kind int

const (
	KindNull   Kind = iota // JSON null / YAML ~
	KindString             // a string scalar
	KindList               // an ordered sequence
	KindMap                // a mapping with ordered keys
	KindScalar             // any other scalar (number, bool); kept only so validation can report it
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "scalar"
	}
}

// Field is one key/value pair of a map node.
type Field struct {
	Key   string
	Value *Node
}

// Node is an order-preserving document tree. Catalog documents are never
// decoded into Go maps because enumeration order defines traversal order.
type Node struct {
	Kind   Kind
	Text   string // KindString, and the raw literal for KindScalar
	Items  []*Node
	Fields []Field

	// raw holds the decoded scalar value for KindScalar (float64 or bool).
	raw any
}

// String returns a string node.
func String(s string) *Node {
	return &Node{Kind: KindString, Text: s}
}

// List returns a list node.
func List(items ...*Node) *Node {
	return &Node{Kind: KindList, Items: items}
}

// Map returns a map node with fields in the given order.
func Map(fields ...Field) *Node {
	return &Node{Kind: KindMap, Fields: fields}
}

// Strings returns a list node of string nodes.
func Strings(ss ...string) *Node {
	n := &Node{Kind: KindList, Items: make([]*Node, 0, len(ss))}
	for _, s := range ss {
		n.Items = append(n.Items, String(s))
	}
	return n
}

// Get returns the value under key for a map node.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != KindMap {
		return nil, false
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// GetString returns the string value under key, or "" if absent or not a string.
func (n *Node) GetString(key string) string {
	v, ok := n.Get(key)
	if !ok || v.Kind != KindString {
		return ""
	}
	return v.Text
}

// Keys returns the map keys in document order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// StringItems returns the string elements of a list node, skipping anything else.
func (n *Node) StringItems() []string {
	if n == nil || n.Kind != KindList {
		return nil
	}
	out := make([]string, 0, len(n.Items))
	for _, it := range n.Items {
		if it.Kind == KindString {
			out = append(out, it.Text)
		}
	}
	return out
}

// Value converts the tree into the generic form expected by JSON Schema
// validators (map[string]any, []any, string, float64, bool, nil).
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindString:
		return n.Text
	case KindList:
		out := make([]any, 0, len(n.Items))
		for _, it := range n.Items {
			out = append(out, it.Value())
		}
		return out
	case KindMap:
		out := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			out[f.Key] = f.Value.Value()
		}
		return out
	case KindScalar:
		return n.raw
	default:
		return nil
	}
}
