package tabdoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell value grammar. A table cell cannot hold a real line break, so a
// list field is encoded as bullet lines joined by the literal
// two-character token backslash-n. A cell whose trimmed text starts with
// the bullet marker decodes as a list.
const (
	escapedNewline = `\n`
	bulletMarker   = "- "
)

// DecodeTable parses a pipe-delimited table into a Document. The first
// non-empty line is the header, the second is the alignment separator
// (discarded without validation), and every further line is a data row.
// Cells pair positionally with the header: extra cells are dropped and
// missing trailing fields are left unset. Ragged rows are reported as
// warnings, not errors; the only hard failure is a document too short to
// contain a header and separator, reported as [ErrTableTooShort].
func DecodeTable(data []byte) (Document, []Warning, error) {
	lines := tableLines(data)
	warnings, err := validateTable(lines)
	if err != nil {
		return Document{}, nil, err
	}
	doc := Document{Header: splitRow(lines[0])}
	for _, line := range lines[2:] {
		cells := splitRow(line)
		rec := make(Record, 0, len(doc.Header))
		for i, name := range doc.Header {
			if i >= len(cells) {
				break
			}
			rec = append(rec, Field{Name: name, Value: decodeCell(cells[i])})
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc, warnings, nil
}

// EncodeTable serializes a Document as a pipe-delimited table: a header
// row, an alignment separator, and one row per record in document order.
// Cells are padded to the widest entry in their column. A document with
// no header produces no output.
func EncodeTable(doc Document) []byte {
	numCols := len(doc.Header)
	if numCols == 0 {
		return nil
	}

	rows := make([][]string, len(doc.Records))
	for i, rec := range doc.Records {
		row := make([]string, numCols)
		for j, name := range doc.Header {
			if v, ok := rec.Get(name); ok {
				row[j] = encodeCell(v)
			}
		}
		rows[i] = row
	}

	// Column widths, minimum 3 for the alignment markers.
	widths := make([]int, numCols)
	for i, col := range doc.Header {
		if w := runewidth.StringWidth(col); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var buf bytes.Buffer
	writeTableRow(&buf, doc.Header, widths)

	sep := make([]string, numCols)
	for i, width := range widths {
		sep[i] = ":" + strings.Repeat("-", width-2) + ":"
	}
	fmt.Fprintf(&buf, "| %s |\n", strings.Join(sep, " | "))

	for _, row := range rows {
		writeTableRow(&buf, row, widths)
	}
	return buf.Bytes()
}

func writeTableRow(buf *bytes.Buffer, cells []string, widths []int) {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = cell + strings.Repeat(" ", width-runewidth.StringWidth(cell))
	}
	fmt.Fprintf(buf, "| %s |\n", strings.Join(padded, " | "))
}

// tableLines splits the input into trimmed, non-empty lines.
func tableLines(data []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// splitRow strips the outer pipes, splits on the remaining ones, and
// trims each cell.
func splitRow(line string) []string {
	cells := strings.Split(strings.Trim(line, "|"), "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}

// decodeCell interprets one cell under the cell value grammar: a bullet
// list becomes an ordered list of strings, anything else is the verbatim
// trimmed scalar. Empty lines inside a list are dropped.
func decodeCell(cell string) any {
	if !strings.HasPrefix(cell, bulletMarker) {
		return cell
	}
	var items []string
	for _, line := range strings.Split(cell, escapedNewline) {
		item := strings.TrimSpace(strings.TrimLeft(line, "- "))
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// encodeCell is the inverse of decodeCell. Non-string scalars use their
// default string representation.
func encodeCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		if len(val) == 0 {
			return ""
		}
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = bulletMarker + item
		}
		return strings.Join(parts, escapedNewline)
	default:
		return fmt.Sprintf("%v", val)
	}
}
