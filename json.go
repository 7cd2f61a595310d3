package tabdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeJSON parses a structured document: a top-level array of objects.
// The shape rules match [DecodeYAML]: empty input or a top-level value of
// another kind warns and yields zero records, non-object elements are
// skipped with a warning, and only unparsable JSON is fatal.
func DecodeJSON(data []byte) (Document, []Warning, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Document{}, []Warning{{Message: "input is empty or malformed; no records decoded"}}, nil
	}
	if trimmed[0] != '[' {
		return Document{}, []Warning{{Message: "expected a top-level array of objects; no records decoded"}}, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return Document{}, nil, fmt.Errorf("parse json: %w", err)
	}

	var doc Document
	var warnings []Warning
	for i, raw := range raws {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("skipping entry %d: %v", i+1, err)})
			continue
		}
		if len(doc.Header) == 0 {
			doc.Header = rec.Names()
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc, warnings, nil
}

// EncodeJSON serializes the records as an array of objects with 2-space
// indentation. Field order is preserved; keys are never sorted and HTML
// characters are not escaped.
func EncodeJSON(doc Document) ([]byte, error) {
	records := doc.Records
	if records == nil {
		records = []Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
