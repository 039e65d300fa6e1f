package csv

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// BadRowMode specifies how the Reader handles rows that fail to process.
type BadRowMode int

const (
	// BadRowModeError stops reading on a bad row (default).
	BadRowModeError BadRowMode = iota
	// BadRowModeWarn reports the row through WarningFunc and continues.
	BadRowModeWarn
	// BadRowModeSkip silently skips bad rows.
	BadRowModeSkip
)

// String returns the string representation of BadRowMode.
func (m BadRowMode) String() string {
	switch m {
	case BadRowModeError:
		return "error"
	case BadRowModeWarn:
		return "warn"
	case BadRowModeSkip:
		return "skip"
	default:
		return "BadRowMode(?)"
	}
}

// WarningFunc receives diagnostics for rows handled by BadRowModeWarn.
type WarningFunc func(lineNumber int, message string)

// ReaderOptions configures stream reading.
type ReaderOptions struct {
	// ProcessorOptions configures the underlying row processing.
	ProcessorOptions
	// FirstLineHeader treats the first non-blank line as a header row.
	FirstLineHeader bool
	// ValidateHeader checks the header row against the declared column
	// names. Only meaningful with FirstLineHeader.
	ValidateHeader bool
	// Comment, if not 0, skips lines starting with this character.
	Comment rune
	// OnBadRow specifies how rows with errors are handled.
	OnBadRow BadRowMode
	// Warning is invoked for rows handled by BadRowModeWarn. Nil warnings
	// are dropped.
	Warning WarningFunc
	// Encoding, if set, transcodes input from this character map to UTF-8.
	Encoding *charmap.Charmap
}

// DefaultReaderOptions returns the default reading configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		ProcessorOptions: DefaultProcessorOptions(),
		FirstLineHeader:  true,
		ValidateHeader:   true,
	}
}

// Reader reads typed rows from a CSV stream one logical record at a time.
//
// Example usage:
//
//	schema := csv.NewSchema().
//	    AddRequiredColumn("name", csv.ColumnTypeString).
//	    AddSimpleColumn("active", csv.ColumnTypeBool)
//	reader, err := csv.NewReader(file, schema, csv.DefaultReaderOptions())
//	for reader.Scan() {
//	    row := reader.Row()
//	    // use row.Values
//	}
//	if err := reader.Err(); err != nil {
//	    // handle error
//	}
type Reader struct {
	proc       *Processor
	br         *bufio.Reader
	opts       ReaderOptions
	lineNumber int
	row        *Row
	err        error
	eof        bool
	started    bool
}

// NewReader creates a Reader over r for the given schema. Configuration
// errors (bad converter formats, invalid characters) are reported here.
func NewReader(r io.Reader, schema *Schema, opts ReaderOptions) (*Reader, error) {
	proc, err := NewProcessor(schema, opts.ProcessorOptions)
	if err != nil {
		return nil, err
	}
	if opts.Encoding != nil {
		r = transform.NewReader(r, opts.Encoding.NewDecoder())
	}
	return &Reader{
		proc: proc,
		br:   bufio.NewReader(r),
		opts: opts,
	}, nil
}

// Processor returns the underlying row processor.
func (r *Reader) Processor() *Processor {
	return r.proc
}

// nextLine reads one physical line with its terminator stripped. The second
// result is false at end of input.
func (r *Reader) nextLine() (string, bool) {
	if r.eof {
		return "", false
	}
	line, err := r.br.ReadString('\n')
	if err != nil {
		r.eof = true
		if err != io.EOF {
			r.err = err
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	r.lineNumber++
	return line, true
}

// Scan advances to the next row. It returns false at end of input or on a
// fatal error; Err reports which.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.started {
		r.started = true
		if r.opts.FirstLineHeader {
			if !r.readHeader() {
				return false
			}
		}
	}
	for {
		line, ok := r.nextLine()
		if !ok {
			return false
		}
		if r.skippable(line) {
			continue
		}
		lineNumber := r.lineNumber
		row, err := r.proc.ReadRow(line, lineNumber, r.nextLine)
		if err != nil {
			if r.recover(lineNumber, err) {
				continue
			}
			r.err = err
			return false
		}
		if row == nil {
			continue
		}
		if !row.Ok() && r.opts.OnBadRow != BadRowModeError {
			if r.recover(lineNumber, &row.Errors[0]) {
				continue
			}
		}
		r.row = row
		return true
	}
}

// readHeader consumes and optionally validates the header line.
func (r *Reader) readHeader() bool {
	for {
		line, ok := r.nextLine()
		if !ok {
			return false
		}
		if r.skippable(line) {
			continue
		}
		if r.opts.ValidateHeader {
			if err := r.proc.ValidateHeader(line, r.lineNumber, r.nextLine); err != nil {
				r.err = err
				return false
			}
		}
		return true
	}
}

// skippable reports whether the line is blank or a comment.
func (r *Reader) skippable(line string) bool {
	if line == "" {
		return true
	}
	if r.opts.Comment != 0 {
		for _, first := range line {
			return first == r.opts.Comment
		}
	}
	return false
}

// recover applies the bad-row policy. It returns true when reading should
// continue with the next row.
func (r *Reader) recover(lineNumber int, err error) bool {
	switch r.opts.OnBadRow {
	case BadRowModeSkip:
		return true
	case BadRowModeWarn:
		if r.opts.Warning != nil {
			r.opts.Warning(lineNumber, err.Error())
		}
		return true
	default:
		return false
	}
}

// Row returns the most recently scanned row. Valid only after Scan returns
// true.
func (r *Reader) Row() *Row {
	return r.row
}

// Err returns the error that stopped scanning, or nil at clean end of
// input.
func (r *Reader) Err() error {
	return r.err
}

// LineNumber returns the number of the last physical line read (1-indexed).
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// ReadAll scans the remaining input and returns every row.
func (r *Reader) ReadAll() ([]*Row, error) {
	rows := make([]*Row, 0, 16)
	for r.Scan() {
		rows = append(rows, r.Row())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
