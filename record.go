package tabdoc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the record as a mapping node. yaml.v3 sorts plain
// map keys, so emitting nodes directly is the only way to keep field
// insertion order in the output.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range r {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name}
		val := &yaml.Node{}
		if err := val.Encode(normalizeValue(f.Value)); err != nil {
			return nil, fmt.Errorf("encode field %q: %w", f.Name, err)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node, preserving key order.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %s", nodeKindName(value.Kind))
	}
	out := make(Record, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		val, err := decodeValueNode(value.Content[i+1])
		if err != nil {
			return fmt.Errorf("field %q: %w", value.Content[i].Value, err)
		}
		out = append(out, Field{Name: value.Content[i].Value, Value: val})
	}
	*r = out
	return nil
}

func decodeValueNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("nested %s values are not supported", nodeKindName(item.Kind))
			}
			items = append(items, item.Value)
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("nested %s values are not supported", nodeKindName(n.Kind))
	}
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}

// normalizeValue turns json.Number values back into real numbers so a
// JSON round trip does not re-emit them as quoted YAML strings.
func normalizeValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// MarshalJSON renders the record as an object with fields in record
// order. encoding/json sorts map keys, hence the manual assembly.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, fmt.Errorf("encode field name %q: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", f.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object token by token, preserving key order.
// Numbers are kept as json.Number so their text survives a round trip.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected an object, got %v", tok)
	}
	out := Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		out = append(out, Field{Name: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	if d != '[' {
		return nil, fmt.Errorf("nested objects are not supported")
	}
	items := make([]string, 0)
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if _, nested := t.(json.Delim); nested {
			return nil, fmt.Errorf("nested values are not supported")
		}
		items = append(items, fmt.Sprintf("%v", t))
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}
