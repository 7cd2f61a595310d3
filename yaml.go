package tabdoc

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a structured document: a top-level sequence of
// mappings. Empty input or a top-level value of another kind yields a
// warning and zero records rather than an error; so does any sequence
// element that is not a mapping, which is skipped. Only unparsable YAML
// is fatal.
func DecodeYAML(data []byte) (Document, []Warning, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Document{}, nil, fmt.Errorf("parse yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Document{}, []Warning{{Message: "input is empty or malformed; no records decoded"}}, nil
	}
	seq := root.Content[0]
	if seq.Kind != yaml.SequenceNode {
		msg := fmt.Sprintf("expected a top-level sequence of mappings, got %s; no records decoded", nodeKindName(seq.Kind))
		return Document{}, []Warning{{Message: msg}}, nil
	}

	var doc Document
	var warnings []Warning
	for i, node := range seq.Content {
		var rec Record
		if err := node.Decode(&rec); err != nil {
			warnings = append(warnings, Warning{
				Line:    node.Line,
				Message: fmt.Sprintf("skipping entry %d: %v", i+1, err),
			})
			continue
		}
		if len(doc.Header) == 0 {
			doc.Header = rec.Names()
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc, warnings, nil
}

// EncodeYAML serializes the records as a sequence of mappings. Field
// order is preserved; keys are never sorted.
func EncodeYAML(doc Document) ([]byte, error) {
	records := doc.Records
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
