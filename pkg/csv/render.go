package csv

import "strings"

// writeField appends one field to the line buffer with proper quoting.
//
// A field is quoted when its converter demands it or when the text contains
// the delimiter, the quote character, or a line break. Inside quotes every
// embedded quote character is doubled.
//
// A nil value renders as zero characters so it reads back as absent. When
// the converter demands quotes a nil value renders as an explicitly empty
// quoted token instead, which also reads back as absent; the distinction
// keeps written output unambiguous either way.
func writeField(buf *strings.Builder, value *string, forceQuotes bool, comma, quote rune) {
	if value == nil {
		if forceQuotes {
			buf.WriteRune(quote)
			buf.WriteRune(quote)
		}
		return
	}
	s := *value
	needsQuoting := forceQuotes ||
		strings.ContainsRune(s, comma) ||
		strings.ContainsRune(s, quote) ||
		strings.ContainsAny(s, "\n\r")
	if !needsQuoting {
		buf.WriteString(s)
		return
	}
	buf.WriteRune(quote)
	for _, r := range s {
		if r == quote {
			buf.WriteRune(quote)
		}
		buf.WriteRune(r)
	}
	buf.WriteRune(quote)
}

// renderLine joins already-formatted field values into one raw CSV line,
// with exactly one delimiter between fields and no line terminator.
func renderLine(values []*string, forceQuotes []bool, comma, quote rune) string {
	var buf strings.Builder
	for i, value := range values {
		if i > 0 {
			buf.WriteRune(comma)
		}
		writeField(&buf, value, forceQuotes[i], comma, quote)
	}
	return buf.String()
}
