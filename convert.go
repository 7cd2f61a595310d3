package tabdoc

import (
	"errors"
	"os"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
)

// Text codes attached to fatal conversion errors so callers can branch
// without matching message strings.
const (
	codeBadExtension  = "UNSUPPORTED_EXTENSION"
	codeTableTooShort = "TABLE_TOO_SHORT"
	codeDecodeFailed  = "DECODE_FAILED"
	codeEncodeFailed  = "ENCODE_FAILED"
	codeInputRead     = "INPUT_READ_FAILED"
	codeOutputWrite   = "OUTPUT_WRITE_FAILED"
)

// Options configures a single file conversion.
type Options struct {
	// Input is the source file; its extension decides the direction.
	Input string
	// Output overrides the derived output path.
	Output string
	// Format is the structured output format for table input. YAML when
	// unset. Ignored when converting structured input to a table.
	Format Format
	// DryRun decodes and reports the record count without writing.
	DryRun bool
}

// Summary reports what a conversion did, or would do under DryRun.
type Summary struct {
	Direction Direction
	Input     string
	Output    string
	Records   int
	Warnings  []Warning
	DryRun    bool
}

// Converter runs whole-file conversions. The zero value is not usable;
// construct with [NewConverter]. The logger is injected rather than held
// in package state so the codec stays a pure function of its inputs.
type Converter struct {
	logger glog.Logger
}

// NewConverter returns a Converter logging through the given logger. A
// nil logger falls back to an error-level console logger.
func NewConverter(logger glog.Logger) *Converter {
	if logger == nil {
		logger = glog.NewLogger(
			glog.WithLevel(glog.Error),
			glog.WithLoggerTypeConsole(),
		)
	}
	return &Converter{logger: logger}
}

// Convert reads the input file, decodes it according to the detected
// direction, and writes the counterpart representation. Warnings are
// logged and returned in the summary. Under DryRun the output path is
// still computed and logged but never created or modified.
func (c *Converter) Convert(opts Options) (Summary, error) {
	dir, err := DetectDirection(opts.Input)
	if err != nil {
		c.logger.Error("cannot infer conversion direction", "input", opts.Input, "error", err)
		return Summary{}, goerrors.Wrap(err, goerrors.CategoryValidation, "cannot infer conversion direction").
			WithTextCode(codeBadExtension)
	}
	format := opts.Format
	if format == "" {
		format = YAML
	}
	output := opts.Output
	if output == "" {
		output = DefaultOutputPath(opts.Input, dir, format)
	}
	c.logger.Info("converting", "direction", dir.String(), "input", opts.Input, "output", output)

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		c.logger.Error("read input failed", "input", opts.Input, "error", err)
		return Summary{}, goerrors.Wrap(err, goerrors.CategoryCommand, "read input").
			WithTextCode(codeInputRead)
	}

	var doc Document
	var warnings []Warning
	if dir == TableToStructured {
		doc, warnings, err = DecodeTable(data)
	} else {
		doc, warnings, err = DecodeYAML(data)
	}
	if err != nil {
		c.logger.Error("decode failed", "input", opts.Input, "error", err)
		if errors.Is(err, ErrTableTooShort) {
			return Summary{}, goerrors.Wrap(err, goerrors.CategoryValidation, "decode input").
				WithTextCode(codeTableTooShort)
		}
		return Summary{}, goerrors.Wrap(err, goerrors.CategoryCommand, "decode input").
			WithTextCode(codeDecodeFailed)
	}
	for _, w := range warnings {
		c.logger.Warn("decode warning", "input", opts.Input, "line", w.Line, "detail", w.Message)
	}

	summary := Summary{
		Direction: dir,
		Input:     opts.Input,
		Output:    output,
		Records:   len(doc.Records),
		Warnings:  warnings,
		DryRun:    opts.DryRun,
	}
	if opts.DryRun {
		c.logger.Info("dry run: nothing written", "records", summary.Records, "output", output)
		return summary, nil
	}

	var out []byte
	if dir == TableToStructured {
		if format == JSON {
			out, err = EncodeJSON(doc)
		} else {
			out, err = EncodeYAML(doc)
		}
		if err != nil {
			c.logger.Error("encode failed", "output", output, "error", err)
			return Summary{}, goerrors.Wrap(err, goerrors.CategoryCommand, "encode output").
				WithTextCode(codeEncodeFailed)
		}
	} else {
		out = EncodeTable(doc)
	}

	if err := os.WriteFile(output, out, 0o644); err != nil {
		c.logger.Error("write output failed", "output", output, "error", err)
		return Summary{}, goerrors.Wrap(err, goerrors.CategoryCommand, "write output").
			WithTextCode(codeOutputWrite)
	}
	c.logger.Info("wrote records", "records", summary.Records, "output", output)
	return summary, nil
}
