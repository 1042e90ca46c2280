package catalog

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromName picks the format from a file name or URL path extension.
// Unknown extensions default to JSON.
func FormatFromName(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses raw document bytes into an order-preserving tree.
func Decode(data []byte, format Format) (*Node, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON, "":
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func decodeJSON(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	return fromGJSON(gjson.ParseBytes(data)), nil
}

func fromGJSON(r gjson.Result) *Node {
	switch {
	case r.IsObject():
		n := &Node{Kind: KindMap}
		r.ForEach(func(k, v gjson.Result) bool {
			setField(n, k.String(), fromGJSON(v))
			return true
		})
		return n
	case r.IsArray():
		n := &Node{Kind: KindList}
		r.ForEach(func(_, v gjson.Result) bool {
			n.Items = append(n.Items, fromGJSON(v))
			return true
		})
		return n
	}

	switch r.Type {
	case gjson.String:
		return String(r.String())
	case gjson.Number:
		return &Node{Kind: KindScalar, Text: r.Raw, raw: r.Num}
	case gjson.True, gjson.False:
		return &Node{Kind: KindScalar, Text: r.Raw, raw: r.Bool()}
	default:
		return &Node{Kind: KindNull}
	}
}

func decodeYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.Kind == 0 {
		return &Node{Kind: KindNull}, nil
	}
	return fromYAML(&doc)
}

func fromYAML(y *yaml.Node) (*Node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &Node{Kind: KindNull}, nil
		}
		return fromYAML(y.Content[0])

	case yaml.AliasNode:
		return fromYAML(y.Alias)

	case yaml.MappingNode:
		n := &Node{Kind: KindMap}
		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			val, err := fromYAML(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			setField(n, key.Value, val)
		}
		return n, nil

	case yaml.SequenceNode:
		n := &Node{Kind: KindList, Items: make([]*Node, 0, len(y.Content))}
		for _, c := range y.Content {
			item, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, item)
		}
		return n, nil

	case yaml.ScalarNode:
		switch y.ShortTag() {
		case "!!str":
			return String(y.Value), nil
		case "!!null":
			return &Node{Kind: KindNull}, nil
		case "!!bool":
			var b bool
			if err := y.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", y.Line, err)
			}
			return &Node{Kind: KindScalar, Text: y.Value, raw: b}, nil
		default:
			var f float64
			if err := y.Decode(&f); err != nil {
				// Timestamps and other exotic tags are surfaced as strings so
				// schema validation reports them against the expected type.
				return String(y.Value), nil
			}
			return &Node{Kind: KindScalar, Text: y.Value, raw: f}, nil
		}
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", y.Line)
}

// setField appends key/value, or replaces the value in place when the key
// repeats (last value wins, first position kept).
func setField(n *Node, key string, val *Node) {
	for i := range n.Fields {
		if n.Fields[i].Key == key {
			n.Fields[i].Value = val
			return
		}
	}
	n.Fields = append(n.Fields, Field{Key: key, Value: val})
}
