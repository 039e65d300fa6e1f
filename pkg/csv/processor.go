package csv

import (
	"fmt"
	"strings"

	"github.com/RockCohen/simplecsv/internal/tokenizer"
)

// ProcessorOptions configures row processing.
type ProcessorOptions struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
	// Quote is the field quote character. Default: '"'
	Quote rune
	// Escape, if not 0, makes the following input character literal.
	// Default: 0 (disabled); doubled quotes are always understood.
	Escape rune
	// AllowPartialRows continues past per-column conversion errors,
	// collecting them on the row, instead of failing the row on the first
	// one.
	AllowPartialRows bool
	// Registry resolves converters for column types. Default: the built-in
	// registry.
	Registry *ConverterRegistry
}

// DefaultProcessorOptions returns the default processing configuration.
func DefaultProcessorOptions() ProcessorOptions {
	return ProcessorOptions{
		Comma: ',',
		Quote: '"',
	}
}

// Row is the result of processing one logical record.
type Row struct {
	// Values holds one typed value per declared column, nil where the
	// field was absent or failed to convert.
	Values []interface{}
	// Errors holds the diagnostics recorded against this row, in column
	// order.
	Errors []ParseError
	// LineNumber is the physical line the record started on (1-indexed).
	LineNumber int
	// ExtraLines is the number of continuation lines the record spanned
	// beyond the first.
	ExtraLines int
}

// Ok reports whether the row was processed without errors.
func (r *Row) Ok() bool {
	return len(r.Errors) == 0
}

// Value returns the typed value of the column at index i, or nil when the
// index is out of range.
func (r *Row) Value(i int) interface{} {
	if i < 0 || i >= len(r.Values) {
		return nil
	}
	return r.Values[i]
}

// Processor drives reading and writing of rows against a configured column
// list. It is immutable after construction and safe to share across
// goroutines processing different rows.
type Processor struct {
	opts    ProcessorOptions
	tok     tokenizer.Options
	columns []*ColumnInfo
	byName  map[string]int
}

// NewProcessor configures the schema's columns and returns a processor.
// Malformed converter configurations fail here, before any row is
// processed.
func NewProcessor(schema *Schema, opts ProcessorOptions) (*Processor, error) {
	if schema == nil || len(schema.Columns) == 0 {
		return nil, &ConfigError{Message: "schema has no columns"}
	}
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}
	if opts.Registry == nil {
		opts.Registry = defaultRegistry
	}
	tok := tokenizer.Options{Comma: opts.Comma, Quote: opts.Quote, Escape: opts.Escape}
	if err := tok.Validate(); err != nil {
		return nil, &ConfigError{Message: "invalid character configuration", Err: err}
	}
	p := &Processor{
		opts:    opts,
		tok:     tok,
		columns: make([]*ColumnInfo, 0, len(schema.Columns)),
		byName:  make(map[string]int, len(schema.Columns)),
	}
	for i, def := range schema.Columns {
		col, err := newColumnInfo(def, i, opts.Registry)
		if err != nil {
			return nil, err
		}
		if _, dup := p.byName[col.Name()]; dup {
			return nil, &ConfigError{Column: col.Name(), Message: "duplicate column name"}
		}
		p.byName[col.Name()] = i
		p.columns = append(p.columns, col)
	}
	return p, nil
}

// Columns returns the configured columns in declared order.
func (p *Processor) Columns() []*ColumnInfo {
	return p.columns
}

// ColumnIndex returns the index of the named column, or -1 when unknown.
func (p *Processor) ColumnIndex(name string) int {
	if i, ok := p.byName[name]; ok {
		return i
	}
	return -1
}

// ReadRow tokenizes one logical record and converts each field in declared
// column order. next supplies continuation lines for quoted fields spanning
// physical lines and may be nil for single-line input.
//
// A blank line yields (nil, nil): no record. A malformed line (unterminated
// quote, stray character after a closing quote) always fails the whole row.
// Conversion errors fail the row unless AllowPartialRows is set, in which
// case they are collected on the returned Row and processing continues with
// the next column.
func (p *Processor) ReadRow(line string, lineNumber int, next tokenizer.LineSource) (*Row, error) {
	fields, extra, err := p.tok.Tokenize(line, lineNumber, next)
	if err != nil {
		te := err.(*tokenizer.Error)
		return nil, &ParseError{
			ErrorType:  ErrorTypeInvalidFormat,
			LineNumber: te.Line,
			LinePos:    te.Pos,
			Message:    te.Message,
			Line:       line,
		}
	}
	if len(fields) == 0 {
		return nil, nil
	}

	row := &Row{
		Values:     make([]interface{}, len(p.columns)),
		LineNumber: lineNumber,
		ExtraLines: extra,
	}

	if len(fields) != len(p.columns) {
		perr := ParseError{
			LineNumber: lineNumber,
			Line:       line,
			Message:    fmt.Sprintf("got %d fields, expected %d", len(fields), len(p.columns)),
		}
		if len(fields) < len(p.columns) {
			perr.ErrorType = ErrorTypeTruncatedLine
			perr.LinePos = lastFieldEnd(fields)
		} else {
			perr.ErrorType = ErrorTypeInvalidFormat
			perr.LinePos = fields[len(p.columns)].Pos
		}
		if !p.opts.AllowPartialRows {
			return nil, &perr
		}
		row.Errors = append(row.Errors, perr)
	}

	var perr ParseError
	for i, col := range p.columns {
		if i >= len(fields) {
			break
		}
		field := fields[i]
		value := field.Value
		if value == "" && !field.Quoted && col.Default() != "" {
			value = col.Default()
		}
		if col.trimInput || col.Converter().AlwaysTrimInput() {
			value = strings.TrimSpace(value)
		}

		perr.Reset()
		if col.Required() && value == "" {
			perr.ErrorType = ErrorTypeRequiredField
			perr.LineNumber = lineNumber
			perr.LinePos = field.Pos
			perr.Message = fmt.Sprintf("column %q must not be empty", col.Name())
		} else {
			row.Values[i] = col.Converter().Parse(lineNumber, field.Pos, col, value, &perr)
		}
		if perr.IsError() {
			perr.Line = line
			row.Values[i] = nil
			if !p.opts.AllowPartialRows {
				failed := perr
				return nil, &failed
			}
			row.Errors = append(row.Errors, perr)
		}
	}
	return row, nil
}

// WriteRow converts one typed value per column to its field text and joins
// the fields into a raw line without a terminator.
func (p *Processor) WriteRow(values []interface{}) (string, error) {
	if len(values) != len(p.columns) {
		return "", fmt.Errorf("csv: got %d values, expected %d", len(values), len(p.columns))
	}
	rendered := make([]*string, len(p.columns))
	forced := make([]bool, len(p.columns))
	for i, col := range p.columns {
		s, err := col.Converter().Format(col, values[i])
		if err != nil {
			return "", err
		}
		rendered[i] = s
		forced[i] = col.Converter().NeedsQuotes(col.Config())
	}
	return renderLine(rendered, forced, p.opts.Comma, p.opts.Quote), nil
}

// Header renders the header line from the column names, quoted by the same
// rules as data fields.
func (p *Processor) Header() string {
	rendered := make([]*string, len(p.columns))
	forced := make([]bool, len(p.columns))
	for i, col := range p.columns {
		name := col.Name()
		rendered[i] = &name
	}
	return renderLine(rendered, forced, p.opts.Comma, p.opts.Quote)
}

// ValidateHeader checks that a header line matches the declared column
// names in order. The returned error is a *ParseError positioned at the
// first mismatch.
func (p *Processor) ValidateHeader(line string, lineNumber int, next tokenizer.LineSource) error {
	fields, _, err := p.tok.Tokenize(line, lineNumber, next)
	if err != nil {
		te := err.(*tokenizer.Error)
		return &ParseError{
			ErrorType:  ErrorTypeInvalidHeader,
			LineNumber: te.Line,
			LinePos:    te.Pos,
			Message:    te.Message,
			Line:       line,
		}
	}
	if len(fields) != len(p.columns) {
		return &ParseError{
			ErrorType:  ErrorTypeInvalidHeader,
			LineNumber: lineNumber,
			LinePos:    lastFieldEnd(fields),
			Message:    fmt.Sprintf("got %d header columns, expected %d", len(fields), len(p.columns)),
			Line:       line,
		}
	}
	for i, col := range p.columns {
		if fields[i].Value != col.Name() {
			return &ParseError{
				ErrorType:  ErrorTypeInvalidHeader,
				LineNumber: lineNumber,
				LinePos:    fields[i].Pos,
				Message:    fmt.Sprintf("header column %d is %q, expected %q", i, fields[i].Value, col.Name()),
				Line:       line,
			}
		}
	}
	return nil
}

// lastFieldEnd is the position just past the last field, for diagnostics
// about missing fields.
func lastFieldEnd(fields []tokenizer.Field) int {
	if len(fields) == 0 {
		return 0
	}
	last := fields[len(fields)-1]
	return last.Pos + len(last.Value)
}
