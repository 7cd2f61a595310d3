package tabdoc

import "fmt"

// validateTable checks structural well-formedness before rows are built.
// Only a document too short to contain a header and separator is fatal.
// Every data line whose field count differs from the header produces one
// warning carrying its 1-based line number; row construction proceeds
// regardless.
func validateTable(lines []string) ([]Warning, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: need a header and separator row, got %d line(s)", ErrTableTooShort, len(lines))
	}
	want := len(splitRow(lines[0]))
	var warnings []Warning
	for i, line := range lines[2:] {
		if got := len(splitRow(line)); got != want {
			warnings = append(warnings, Warning{
				Line:    i + 3,
				Message: fmt.Sprintf("row has %d fields, expected %d", got, want),
			})
		}
	}
	return warnings, nil
}
