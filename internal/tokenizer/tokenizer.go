// Package tokenizer splits logical CSV records into raw fields.
//
// A logical record usually maps to one physical line, but a quoted field may
// contain embedded line breaks, in which case the tokenizer pulls
// continuation lines from a LineSource until the quote closes.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Options configures the tokenizer behavior.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune
	// Quote is the field quote character. Default: '"'
	Quote rune
	// Escape, if not 0, makes the following character literal regardless of
	// quoting. Default: 0 (disabled); doubled quotes are always understood.
	Escape rune
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Comma: ',',
		Quote: '"',
	}
}

// Validate checks that the configured characters are usable and distinct.
func (o Options) Validate() error {
	if !validDelim(o.Comma) {
		return fmt.Errorf("invalid delimiter %q", o.Comma)
	}
	if !validDelim(o.Quote) {
		return fmt.Errorf("invalid quote character %q", o.Quote)
	}
	if o.Comma == o.Quote {
		return fmt.Errorf("delimiter and quote character are both %q", o.Comma)
	}
	if o.Escape != 0 {
		if !validDelim(o.Escape) {
			return fmt.Errorf("invalid escape character %q", o.Escape)
		}
		if o.Escape == o.Quote {
			return fmt.Errorf("escape character must differ from quote character %q", o.Quote)
		}
		if o.Escape == o.Comma {
			return fmt.Errorf("escape character must differ from delimiter %q", o.Comma)
		}
	}
	return nil
}

// validDelim reports whether r can serve as a structural character.
func validDelim(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Error is a tokenization failure with position information.
type Error struct {
	// Line is the physical line the failure occurred on (1-indexed).
	Line int
	// Pos is the 0-based character position within the logical record.
	Pos int
	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("line %d, position %d: %s", e.Line, e.Pos, e.Message)
}

// Tokenize splits one logical record into its raw fields.
//
// line is the first physical line of the record with its line terminator
// already stripped. lineNumber is the 1-based number of that line. next is
// consulted only when a quoted field runs past the end of a physical line;
// it may be nil if the input is known to be single-line.
//
// Returns the fields in order and the number of continuation lines consumed.
// An empty line yields zero fields, not one empty field.
func (o Options) Tokenize(line string, lineNumber int, next LineSource) ([]Field, int, error) {
	if line == "" {
		return []Field{}, 0, nil
	}

	fields := make([]Field, 0, 8)
	var buf strings.Builder
	state := stateUnquoted
	quoted := false
	escaped := false
	pos := 0   // position within the logical record
	start := 0 // position the current field started at
	extra := 0 // continuation lines consumed

	endField := func() {
		fields = append(fields, Field{Value: buf.String(), Quoted: quoted, Pos: start})
		buf.Reset()
		quoted = false
		start = pos + 1
	}

	for {
		for _, r := range line {
			switch {
			case escaped:
				buf.WriteRune(r)
				escaped = false
			case o.Escape != 0 && r == o.Escape && state != stateAfterQuote:
				escaped = true
			case state == stateQuoted:
				if r == o.Quote {
					state = stateAfterQuote
				} else {
					buf.WriteRune(r)
				}
			case state == stateAfterQuote:
				switch r {
				case o.Quote:
					// doubled quote, a literal quote character
					buf.WriteRune(o.Quote)
					state = stateQuoted
				case o.Comma:
					endField()
					state = stateUnquoted
				default:
					return nil, extra, &Error{
						Line:    lineNumber,
						Pos:     pos,
						Message: fmt.Sprintf("unexpected character %q after closing quote", r),
					}
				}
			case r == o.Comma:
				endField()
			case r == o.Quote && buf.Len() == 0 && !quoted:
				state = stateQuoted
				quoted = true
			default:
				buf.WriteRune(r)
			}
			pos++
		}

		if state == stateQuoted {
			// The quote is still open, so the record continues on the next
			// physical line with the line break as field content.
			var nl string
			ok := false
			if next != nil {
				nl, ok = next()
			}
			if !ok {
				return nil, extra, &Error{
					Line:    lineNumber,
					Pos:     lastPos(pos),
					Message: "unterminated quoted field",
				}
			}
			buf.WriteByte('\n')
			pos++
			lineNumber++
			extra++
			escaped = false
			line = nl
			continue
		}
		if escaped {
			return nil, extra, &Error{
				Line:    lineNumber,
				Pos:     lastPos(pos),
				Message: "escape character at end of record",
			}
		}
		break
	}

	endField()
	return fields, extra, nil
}

// lastPos is the position of the last consumed character.
func lastPos(pos int) int {
	if pos > 0 {
		return pos - 1
	}
	return 0
}
