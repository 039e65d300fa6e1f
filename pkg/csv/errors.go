// Package csv maps rows of typed fields to and from CSV text using a
// declarative column mapping.
//
// A Schema declares the columns in order, each with a Converter that owns
// the string/typed-value translation for its type. A Processor drives the
// per-row work: tokenizing a logical line into raw fields, converting each
// field, and rendering typed values back out with correct quoting. Reader
// and Writer wrap the Processor for stream-level use.
package csv

import "fmt"

// ErrorType classifies a per-row parse failure.
type ErrorType int

const (
	// ErrorTypeNone means no error has been recorded.
	ErrorTypeNone ErrorType = iota
	// ErrorTypeInvalidFormat means a field's text did not match its
	// declared type or the line itself was malformed.
	ErrorTypeInvalidFormat
	// ErrorTypeRequiredField means a required column was empty.
	ErrorTypeRequiredField
	// ErrorTypeInvalidHeader means the header line did not match the
	// declared column names.
	ErrorTypeInvalidHeader
	// ErrorTypeTruncatedLine means the line had fewer fields than columns.
	ErrorTypeTruncatedLine
	// ErrorTypeInternal means an unexpected processing failure.
	ErrorTypeInternal
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNone:
		return "none"
	case ErrorTypeInvalidFormat:
		return "invalid-format"
	case ErrorTypeRequiredField:
		return "required-field"
	case ErrorTypeInvalidHeader:
		return "invalid-header"
	case ErrorTypeTruncatedLine:
		return "truncated-line"
	case ErrorTypeInternal:
		return "internal"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
}

// ParseError is a structured per-row diagnostic. Conversion calls receive a
// ParseError by pointer and populate it instead of aborting the row; the
// caller owns the instance and decides what a recorded error means for the
// rest of the row.
//
// When ErrorType is ErrorTypeNone no other field is meaningful. At most one
// error is recorded per column-parse attempt; Reset prepares an instance
// for reuse.
type ParseError struct {
	// ErrorType classifies the failure.
	ErrorType ErrorType
	// LineNumber is the physical line the failure occurred on (1-indexed).
	LineNumber int
	// LinePos is the 0-based character position of the offending token
	// within the logical record.
	LinePos int
	// Message describes the failure.
	Message string
	// Line is the offending raw line, when available.
	Line string
}

// IsError reports whether an error has been recorded.
func (e *ParseError) IsError() bool {
	return e.ErrorType != ErrorTypeNone
}

// Reset clears the instance so it can be reused for another parse attempt.
func (e *ParseError) Reset() {
	*e = ParseError{}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s error on line %d, position %d", e.ErrorType, e.LineNumber, e.LinePos)
	}
	return fmt.Sprintf("%s error on line %d, position %d: %s", e.ErrorType, e.LineNumber, e.LinePos, e.Message)
}

// ConfigError reports an invalid column or converter configuration. These
// are fatal at setup time, before any row is processed.
type ConfigError struct {
	// Column is the column name, when the failure is column-specific.
	Column string
	// Message describes the failure.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Column == "" {
		return "csv: " + msg
	}
	return fmt.Sprintf("csv: column %q: %s", e.Column, msg)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
