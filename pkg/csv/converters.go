// Package csv provides type converters for CSV field values.
package csv

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Flag bits for StringConverter.
const (
	// StringBlankIsNull parses an empty token as an absent value instead
	// of the empty string.
	StringBlankIsNull int64 = 1 << 1
	// StringNeedsQuotes surrounds output with quotes. This is what lets a
	// written absent value ("") read back differently from a plain empty
	// token.
	StringNeedsQuotes int64 = 1 << 2
)

// StringConverter passes field text through unchanged.
type StringConverter struct{}

type stringConfig struct {
	blankIsNull bool
	needsQuotes bool
}

// Configure implements Converter. The format string is unused.
func (StringConverter) Configure(format string, flags int64, col *ColumnInfo) (interface{}, error) {
	return &stringConfig{
		blankIsNull: flags&StringBlankIsNull != 0,
		needsQuotes: flags&StringNeedsQuotes != 0,
	}, nil
}

// NeedsQuotes implements Converter.
func (StringConverter) NeedsQuotes(config interface{}) bool {
	return config.(*stringConfig).needsQuotes
}

// AlwaysTrimInput implements Converter.
func (StringConverter) AlwaysTrimInput() bool {
	return false
}

// Format implements Converter.
func (StringConverter) Format(col *ColumnInfo, value interface{}) (*string, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("column %q: expected string value, got %T", col.Name(), value)
	}
	return &s, nil
}

// Parse implements Converter.
func (StringConverter) Parse(lineNumber int, linePos int, col *ColumnInfo, value string, perr *ParseError) interface{} {
	if value == "" && col.Config().(*stringConfig).blankIsNull {
		return nil
	}
	return value
}

// IntConverter converts integer fields via strconv, producing int64.
type IntConverter struct{}

// Configure implements Converter. The format string is unused.
func (IntConverter) Configure(format string, flags int64, col *ColumnInfo) (interface{}, error) {
	return nil, nil
}

// NeedsQuotes implements Converter.
func (IntConverter) NeedsQuotes(config interface{}) bool {
	return false
}

// AlwaysTrimInput implements Converter.
func (IntConverter) AlwaysTrimInput() bool {
	return true
}

// Format implements Converter.
func (IntConverter) Format(col *ColumnInfo, value interface{}) (*string, error) {
	if value == nil {
		return nil, nil
	}
	var s string
	switch v := value.(type) {
	case int64:
		s = strconv.FormatInt(v, 10)
	case int:
		s = strconv.Itoa(v)
	default:
		return nil, fmt.Errorf("column %q: expected integer value, got %T", col.Name(), value)
	}
	return &s, nil
}

// Parse implements Converter.
func (IntConverter) Parse(lineNumber int, linePos int, col *ColumnInfo, value string, perr *ParseError) interface{} {
	if value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		perr.ErrorType = ErrorTypeInvalidFormat
		perr.LineNumber = lineNumber
		perr.LinePos = linePos
		perr.Message = fmt.Sprintf("invalid integer %q", value)
		return nil
	}
	return n
}

// FloatConverter converts floating point fields, producing float64.
//
// The format string, when set, is an fmt verb used for output, e.g. "%.2f".
type FloatConverter struct{}

type floatConfig struct {
	verb string
}

// Configure implements Converter.
func (FloatConverter) Configure(format string, flags int64, col *ColumnInfo) (interface{}, error) {
	if format != "" && !strings.Contains(format, "%") {
		return nil, fmt.Errorf("float format should be an fmt verb like %%.2f: %q", format)
	}
	return &floatConfig{verb: format}, nil
}

// NeedsQuotes implements Converter.
func (FloatConverter) NeedsQuotes(config interface{}) bool {
	return false
}

// AlwaysTrimInput implements Converter.
func (FloatConverter) AlwaysTrimInput() bool {
	return true
}

// Format implements Converter.
func (FloatConverter) Format(col *ColumnInfo, value interface{}) (*string, error) {
	if value == nil {
		return nil, nil
	}
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	default:
		return nil, fmt.Errorf("column %q: expected float value, got %T", col.Name(), value)
	}
	config := col.Config().(*floatConfig)
	var s string
	if config.verb != "" {
		s = fmt.Sprintf(config.verb, f)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return &s, nil
}

// Parse implements Converter.
func (FloatConverter) Parse(lineNumber int, linePos int, col *ColumnInfo, value string, perr *ParseError) interface{} {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		perr.ErrorType = ErrorTypeInvalidFormat
		perr.LineNumber = lineNumber
		perr.LinePos = linePos
		perr.Message = fmt.Sprintf("invalid float %q", value)
		return nil
	}
	return f
}

// defaultDateLayout is used when no format is configured.
const defaultDateLayout = "2006-01-02"

// DateConverter converts date fields to time.Time.
//
// The format string is a Go reference-time layout; default "2006-01-02".
type DateConverter struct{}

type dateConfig struct {
	layout string
}

// Configure implements Converter.
func (DateConverter) Configure(format string, flags int64, col *ColumnInfo) (interface{}, error) {
	layout := format
	if layout == "" {
		layout = defaultDateLayout
	}
	// Layouts cannot be validated structurally; a bad one surfaces on the
	// first parse. Catch the obvious mistake of an empty round-trip early.
	if _, err := time.Parse(layout, time.Now().UTC().Format(layout)); err != nil {
		return nil, fmt.Errorf("date layout %q does not round-trip: %w", layout, err)
	}
	return &dateConfig{layout: layout}, nil
}

// NeedsQuotes implements Converter.
func (DateConverter) NeedsQuotes(config interface{}) bool {
	return false
}

// AlwaysTrimInput implements Converter.
func (DateConverter) AlwaysTrimInput() bool {
	return true
}

// Format implements Converter.
func (DateConverter) Format(col *ColumnInfo, value interface{}) (*string, error) {
	if value == nil {
		return nil, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return nil, fmt.Errorf("column %q: expected time.Time value, got %T", col.Name(), value)
	}
	s := t.Format(col.Config().(*dateConfig).layout)
	return &s, nil
}

// Parse implements Converter.
func (DateConverter) Parse(lineNumber int, linePos int, col *ColumnInfo, value string, perr *ParseError) interface{} {
	if value == "" {
		return nil
	}
	t, err := time.Parse(col.Config().(*dateConfig).layout, value)
	if err != nil {
		perr.ErrorType = ErrorTypeInvalidFormat
		perr.LineNumber = lineNumber
		perr.LinePos = linePos
		perr.Message = fmt.Sprintf("invalid date %q for layout %q", value, col.Config().(*dateConfig).layout)
		return nil
	}
	return t
}

// Flag bits for EnumConverter.
const (
	// EnumCaseSensitive compares tokens case-sensitively. Default is
	// case-insensitive, with the canonical spelling from the format
	// returned on a match.
	EnumCaseSensitive int64 = 1 << 1
)

// EnumConverter restricts a string field to a fixed set of tokens.
//
// The format string is required: a comma separated list of allowed tokens,
// e.g. "RED,GREEN,BLUE". A token outside the set records a parse error.
type EnumConverter struct{}

type enumConfig struct {
	values        []string
	caseSensitive bool
}

// Configure implements Converter.
func (EnumConverter) Configure(format string, flags int64, col *ColumnInfo) (interface{}, error) {
	if format == "" {
		return nil, fmt.Errorf("enum format is required: a comma separated list of allowed values")
	}
	values := strings.Split(format, ",")
	for _, v := range values {
		if v == "" {
			return nil, fmt.Errorf("enum format has an empty value: %q", format)
		}
	}
	return &enumConfig{
		values:        values,
		caseSensitive: flags&EnumCaseSensitive != 0,
	}, nil
}

// NeedsQuotes implements Converter.
func (EnumConverter) NeedsQuotes(config interface{}) bool {
	return false
}

// AlwaysTrimInput implements Converter.
func (EnumConverter) AlwaysTrimInput() bool {
	return false
}

// Format implements Converter.
func (EnumConverter) Format(col *ColumnInfo, value interface{}) (*string, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("column %q: expected string value, got %T", col.Name(), value)
	}
	return &s, nil
}

// Parse implements Converter. A matched token is returned in the canonical
// spelling declared by the format.
func (EnumConverter) Parse(lineNumber int, linePos int, col *ColumnInfo, value string, perr *ParseError) interface{} {
	if value == "" {
		return nil
	}
	config := col.Config().(*enumConfig)
	for _, v := range config.values {
		if v == value || (!config.caseSensitive && strings.EqualFold(v, value)) {
			return v
		}
	}
	perr.ErrorType = ErrorTypeInvalidFormat
	perr.LineNumber = lineNumber
	perr.LinePos = linePos
	perr.Message = fmt.Sprintf("value %q is not one of %s", value, strings.Join(config.values, ", "))
	return nil
}
