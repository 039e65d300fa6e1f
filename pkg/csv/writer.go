package csv

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// WriterOptions configures stream writing.
type WriterOptions struct {
	// ProcessorOptions configures the underlying row processing.
	ProcessorOptions
	// UseCRLF terminates lines with \r\n instead of \n.
	UseCRLF bool
	// Encoding, if set, transcodes output from UTF-8 to this character
	// map.
	Encoding *charmap.Charmap
}

// DefaultWriterOptions returns the default writing configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		ProcessorOptions: DefaultProcessorOptions(),
	}
}

// Writer writes typed rows as CSV lines.
//
// Example usage:
//
//	writer, err := csv.NewWriter(file, schema, csv.DefaultWriterOptions())
//	writer.WriteHeader()
//	writer.Write([]interface{}{"Alice", true})
//	if err := writer.Flush(); err != nil {
//	    // handle error
//	}
type Writer struct {
	proc *Processor
	bw   *bufio.Writer
	tw   io.Closer // transcoding writer, when an encoding is configured
	opts WriterOptions
}

// NewWriter creates a Writer over w for the given schema. Configuration
// errors are reported here.
func NewWriter(w io.Writer, schema *Schema, opts WriterOptions) (*Writer, error) {
	proc, err := NewProcessor(schema, opts.ProcessorOptions)
	if err != nil {
		return nil, err
	}
	var tw io.Closer
	if opts.Encoding != nil {
		t := transform.NewWriter(w, opts.Encoding.NewEncoder())
		w = t
		tw = t
	}
	return &Writer{
		proc: proc,
		bw:   bufio.NewWriter(w),
		tw:   tw,
		opts: opts,
	}, nil
}

// Processor returns the underlying row processor.
func (w *Writer) Processor() *Processor {
	return w.proc
}

// WriteHeader writes the header line built from the column names.
func (w *Writer) WriteHeader() error {
	return w.writeLine(w.proc.Header())
}

// Write converts one typed value per column and writes the resulting line.
func (w *Writer) Write(values []interface{}) error {
	line, err := w.proc.WriteRow(values)
	if err != nil {
		return err
	}
	return w.writeLine(line)
}

// WriteAll writes every row followed by a Flush.
func (w *Writer) WriteAll(rows [][]interface{}) error {
	for _, values := range rows {
		if err := w.Write(values); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Close flushes buffered output and finishes any transcoding. It must be
// called when an encoding is configured; otherwise Flush is enough.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if w.tw != nil {
		return w.tw.Close()
	}
	return nil
}

func (w *Writer) writeLine(line string) error {
	if _, err := w.bw.WriteString(line); err != nil {
		return err
	}
	if w.opts.UseCRLF {
		_, err := w.bw.WriteString("\r\n")
		return err
	}
	return w.bw.WriteByte('\n')
}
