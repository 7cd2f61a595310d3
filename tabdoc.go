package tabdoc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrTableTooShort        = errors.New("table too short")
	ErrUnsupportedExtension = errors.New("unsupported input extension")
	ErrUnsupportedFormat    = errors.New("unsupported format")
)

// Format selects the structured representation written when converting
// away from table form.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

var structuredFormats = []Format{YAML, JSON}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Ext returns the canonical file extension for the format.
func (f Format) Ext() string {
	if f == JSON {
		return ".json"
	}
	return ".yml"
}

// Formats returns all supported structured formats.
func Formats() []Format {
	out := make([]Format, len(structuredFormats))
	copy(out, structuredFormats)
	return out
}

// ParseFormat parses a format string, typically from a CLI flag.
func ParseFormat(s string) (Format, error) {
	for _, f := range structuredFormats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Field is a single named value within a [Record].
type Field struct {
	Name  string
	Value any
}

// Record is one row's worth of field data. Order is significant: it is
// the header order when decoded from a table, and the key order when
// decoded from a structured document. Values are scalar strings, ordered
// lists of strings, or non-string scalars carried through from structured
// input. Duplicate names are kept by position; deduplication is the
// caller's responsibility.
type Record []Field

// Get returns the value of the first field with the given name.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the first field with the given name, or appends a new one.
func (r *Record) Set(name string, value any) {
	for i, f := range *r {
		if f.Name == name {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, Field{Name: name, Value: value})
}

// Names returns the field names in record order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Document is an ordered collection of records sharing one header. The
// header carries the field name order used when serializing back to table
// form.
type Document struct {
	Header  []string
	Records []Record
}

// Warning is an advisory diagnostic produced while decoding. Decoders
// return warnings alongside the document instead of logging them, so
// callers decide how to surface them. Line is 1-based and zero when the
// warning is not tied to a line.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}
