package csv

import (
	"fmt"
	"strings"
)

// Flag bits for BooleanConverter.
const (
	// BooleanParseErrorOnInvalidValue records a parse error when the token
	// matches neither the true nor the false string. Without it an
	// unrecognized token quietly parses as false.
	BooleanParseErrorOnInvalidValue int64 = 1 << 1
	// BooleanCaseSensitive compares tokens case-sensitively, so "TRUE"
	// would no longer match "true". Default is case-insensitive.
	BooleanCaseSensitive int64 = 1 << 2
	// BooleanNeedsQuotes surrounds output with quotes.
	BooleanNeedsQuotes int64 = 1 << 3
)

const (
	defaultTrueString  = "true"
	defaultFalseString = "false"
)

// BooleanConverter converts boolean fields.
//
// The format string may be set to "<true>,<false>" to change the tokens
// written and recognized for the two values. For example "1,0" writes and
// reads 1 for true and 0 for false. Both tokens must be non-empty.
type BooleanConverter struct{}

type booleanConfig struct {
	trueString          string
	falseString         string
	parseErrorOnInvalid bool
	caseSensitive       bool
	needsQuotes         bool
}

// Configure implements Converter.
func (BooleanConverter) Configure(format string, flags int64, col *ColumnInfo) (interface{}, error) {
	trueString := defaultTrueString
	falseString := defaultFalseString
	if format != "" {
		parts := strings.SplitN(format, ",", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("boolean format should be in the form T,F: %q", format)
		}
		trueString = parts[0]
		falseString = parts[1]
	}
	return &booleanConfig{
		trueString:          trueString,
		falseString:         falseString,
		parseErrorOnInvalid: flags&BooleanParseErrorOnInvalidValue != 0,
		caseSensitive:       flags&BooleanCaseSensitive != 0,
		needsQuotes:         flags&BooleanNeedsQuotes != 0,
	}, nil
}

// NeedsQuotes implements Converter.
func (BooleanConverter) NeedsQuotes(config interface{}) bool {
	return config.(*booleanConfig).needsQuotes
}

// AlwaysTrimInput implements Converter.
func (BooleanConverter) AlwaysTrimInput() bool {
	return false
}

// Format implements Converter.
func (BooleanConverter) Format(col *ColumnInfo, value interface{}) (*string, error) {
	if value == nil {
		return nil, nil
	}
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("column %q: expected bool value, got %T", col.Name(), value)
	}
	config := col.Config().(*booleanConfig)
	s := config.falseString
	if b {
		s = config.trueString
	}
	return &s, nil
}

// Parse implements Converter. An empty token is nil. An unrecognized token
// parses as false unless BooleanParseErrorOnInvalidValue escalates it.
func (BooleanConverter) Parse(lineNumber int, linePos int, col *ColumnInfo, value string, perr *ParseError) interface{} {
	config := col.Config().(*booleanConfig)
	switch {
	case value == "":
		return nil
	case booleanEquals(config, value, config.trueString):
		return true
	case booleanEquals(config, value, config.falseString):
		return false
	case config.parseErrorOnInvalid:
		perr.ErrorType = ErrorTypeInvalidFormat
		perr.LineNumber = lineNumber
		perr.LinePos = linePos
		perr.Message = fmt.Sprintf("value %q is neither %q nor %q", value, config.trueString, config.falseString)
		return nil
	default:
		return false
	}
}

func booleanEquals(config *booleanConfig, value, formatValue string) bool {
	if config.caseSensitive {
		return value == formatValue
	}
	return strings.EqualFold(value, formatValue)
}
