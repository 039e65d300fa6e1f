package csv

import "testing"

func TestSniffer_DetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{"comma", "a,b,c\nd,e,f\n", ','},
		{"semicolon", "a;b;c\nd;e;f\n", ';'},
		{"tab", "a\tb\tc\nd\te\tf\n", '\t'},
		{"pipe", "a|b|c\nd|e|f\n", '|'},
		{"empty sample defaults to comma", "", ','},
		{"single column defaults to comma", "a\nb\nc\n", ','},
		{"quoted delimiters ignored", `"a;b",c` + "\n" + `"d;e",f` + "\n", ','},
		{"crlf line endings", "a;b\r\nc;d\r\n", ';'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSniffer(tt.sample).DetectDelimiter(); got != tt.want {
				t.Errorf("DetectDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSniffer_ConsistencyWins(t *testing.T) {
	// Commas appear more often on one line, but semicolons split every
	// line into the same number of fields.
	sample := "a;b,,,,\nc;d\ne;f\n"
	if got := NewSniffer(sample).DetectDelimiter(); got != ';' {
		t.Errorf("DetectDelimiter() = %q, want ';'", got)
	}
}
