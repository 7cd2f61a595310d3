package tabdoc

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Direction selects which way a conversion runs.
type Direction string

const (
	TableToStructured Direction = "table-to-structured"
	StructuredToTable Direction = "structured-to-table"
)

// String returns the direction name.
func (d Direction) String() string { return string(d) }

// DetectDirection infers the conversion direction from the input path's
// extension, case-insensitively. Markdown extensions convert table to
// structured, YAML extensions the other way. Anything else is
// [ErrUnsupportedExtension]: the direction cannot be guessed from
// content, so the caller should fail before touching the file.
func DetectDirection(path string) (Direction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return TableToStructured, nil
	case ".yml", ".yaml":
		return StructuredToTable, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(path))
	}
}

// DefaultOutputPath derives an output path from the input by swapping its
// extension for the counterpart format's canonical one.
func DefaultOutputPath(input string, dir Direction, format Format) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if dir == StructuredToTable {
		return base + ".md"
	}
	return base + format.Ext()
}
