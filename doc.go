// Package tabdoc converts between Markdown pipe tables and structured
// record lists (YAML or JSON), in both directions.
//
// The shared in-memory representation is a [Document]: an ordered list of
// [Record] values that all conform to one header. A record value is either
// a scalar or an ordered list of strings. Because a table cell cannot hold
// a real line break, list values are encoded in table form as bullet lines
// joined by the literal two-character token `\n`:
//
//	| Title | Tags             |
//	| :---: | :--------------: |
//	| Go    | - alpha\n- beta  |
//
// # Codecs
//
// [DecodeTable] and [EncodeTable] handle the table side. Decoding pairs
// each row's cells positionally with the header; ragged rows are reported
// as [Warning] values but still produce a record. [DecodeYAML],
// [EncodeYAML], [DecodeJSON], and [EncodeJSON] handle the structured side
// and preserve field insertion order, so a table converted to YAML and
// back keeps its column order.
//
// # Conversion
//
// [Converter] ties the codecs to the filesystem. The direction is inferred
// from the input extension ([DetectDirection]): .md and .markdown convert
// table to structured, .yml and .yaml convert structured to table. When no
// output path is given, [DefaultOutputPath] swaps the extension. A dry run
// decodes and reports the record count without writing anything.
//
// # Errors and warnings
//
// Hard failures use sentinel errors for programmatic handling:
//
//   - [ErrTableTooShort] — input lacks a header and separator row
//   - [ErrUnsupportedExtension] — direction cannot be inferred
//   - [ErrUnsupportedFormat] — unknown structured format name
//
// Everything advisory (ragged rows, empty or oddly shaped structured
// input) is returned as [Warning] values alongside the decoded document,
// never as an error.
package tabdoc
