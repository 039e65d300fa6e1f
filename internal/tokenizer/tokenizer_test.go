package tokenizer

import (
	"errors"
	"strings"
	"testing"
)

// source builds a LineSource over a fixed list of continuation lines.
func source(lines ...string) LineSource {
	i := 0
	return func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		line := lines[i]
		i++
		return line, true
	}
}

func TestTokenize_SingleLine(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fields []string
	}{
		{"single field", "abc", []string{"abc"}},
		{"simple row", "a,b,c", []string{"a", "b", "c"}},
		{"single comma", ",", []string{"", ""}},
		{"trailing comma", "a,", []string{"a", ""}},
		{"leading comma", ",a", []string{"", "a"}},
		{"empty middle field", "a,,b", []string{"a", "", "b"}},
		{"quoted field", `"hello"`, []string{"hello"}},
		{"quoted empty field", `""`, []string{""}},
		{"quoted with comma", `"a,b",c`, []string{"a,b", "c"}},
		{"doubled quote", `"a""b",1`, []string{`a"b`, "1"}},
		{"only doubled quotes", `""""`, []string{`"`}},
		{"quote in middle of unquoted field", `a"b`, []string{`a"b`}},
		{"mixed quoting", `x,"y",z`, []string{"x", "y", "z"}},
		{"spaces preserved", " a , b ", []string{" a ", " b "}},
		{"unicode", "héllo,wörld", []string{"héllo", "wörld"}},
	}

	opts := DefaultOptions()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, extra, err := opts.Tokenize(tt.input, 1, nil)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if extra != 0 {
				t.Errorf("Tokenize(%q) consumed %d extra lines, want 0", tt.input, extra)
			}
			if len(fields) != len(tt.fields) {
				t.Fatalf("Tokenize(%q) = %d fields, want %d", tt.input, len(fields), len(tt.fields))
			}
			for i, want := range tt.fields {
				if fields[i].Value != want {
					t.Errorf("field %d = %q, want %q", i, fields[i].Value, want)
				}
			}
		})
	}
}

func TestTokenize_EmptyLine(t *testing.T) {
	fields, extra, err := DefaultOptions().Tokenize("", 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("empty line yielded %d fields, want 0", len(fields))
	}
	if extra != 0 {
		t.Errorf("empty line consumed %d extra lines, want 0", extra)
	}
}

func TestTokenize_QuotedFlag(t *testing.T) {
	fields, _, err := DefaultOptions().Tokenize(`a,"b",""`, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{false, true, true}
	for i, q := range want {
		if fields[i].Quoted != q {
			t.Errorf("field %d Quoted = %v, want %v", i, fields[i].Quoted, q)
		}
	}
}

func TestTokenize_Positions(t *testing.T) {
	fields, _, err := DefaultOptions().Tokenize(`ab,"cd",e`, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 3, 8}
	for i, pos := range want {
		if fields[i].Pos != pos {
			t.Errorf("field %d Pos = %d, want %d", i, fields[i].Pos, pos)
		}
	}
}

func TestTokenize_MultiLineQuotedField(t *testing.T) {
	fields, extra, err := DefaultOptions().Tokenize(`"a,`, 1, source(` b",5`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extra != 1 {
		t.Errorf("consumed %d extra lines, want 1", extra)
	}
	want := []string{"a,\n b", "5"}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, w := range want {
		if fields[i].Value != w {
			t.Errorf("field %d = %q, want %q", i, fields[i].Value, w)
		}
	}
}

func TestTokenize_QuotedFieldSpanningSeveralLines(t *testing.T) {
	fields, extra, err := DefaultOptions().Tokenize(`"first`, 1, source("", `last",x`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extra != 2 {
		t.Errorf("consumed %d extra lines, want 2", extra)
	}
	if fields[0].Value != "first\n\nlast" {
		t.Errorf("field 0 = %q, want %q", fields[0].Value, "first\n\nlast")
	}
	if fields[1].Value != "x" {
		t.Errorf("field 1 = %q, want %q", fields[1].Value, "x")
	}
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		next  LineSource
	}{
		{"no line source", `"abc`, nil},
		{"exhausted line source", `"abc`, source()},
		{"unterminated on continuation", `"abc`, source("def")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DefaultOptions().Tokenize(tt.input, 1, tt.next)
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want error", tt.input)
			}
			var te *Error
			if !errors.As(err, &te) {
				t.Fatalf("error is %T, want *Error", err)
			}
			if !strings.Contains(te.Message, "unterminated") {
				t.Errorf("message = %q, want mention of unterminated quote", te.Message)
			}
		})
	}
}

func TestTokenize_UnterminatedQuotePosition(t *testing.T) {
	_, _, err := DefaultOptions().Tokenize(`"ab`, 3, nil)
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if te.Line != 3 {
		t.Errorf("Line = %d, want 3", te.Line)
	}
	if te.Pos != 2 {
		t.Errorf("Pos = %d, want 2", te.Pos)
	}
}

func TestTokenize_CharacterAfterClosingQuote(t *testing.T) {
	_, _, err := DefaultOptions().Tokenize(`"a"x,b`, 1, nil)
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if te.Pos != 3 {
		t.Errorf("Pos = %d, want 3", te.Pos)
	}
}

func TestTokenize_CustomDelimiterAndQuote(t *testing.T) {
	opts := Options{Comma: ';', Quote: '\''}
	fields, _, err := opts.Tokenize(`a;'b;c';d`, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b;c", "d"}
	for i, w := range want {
		if fields[i].Value != w {
			t.Errorf("field %d = %q, want %q", i, fields[i].Value, w)
		}
	}
}

func TestTokenize_EscapeCharacter(t *testing.T) {
	opts := Options{Comma: ',', Quote: '"', Escape: '\\'}
	tests := []struct {
		name   string
		input  string
		fields []string
	}{
		{"escaped delimiter", `a\,b,c`, []string{"a,b", "c"}},
		{"escaped quote", `\"a,b`, []string{`"a`, "b"}},
		{"escaped escape", `a\\b`, []string{`a\b`}},
		{"escape inside quotes", `"a\"b"`, []string{`a"b`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, _, err := opts.Tokenize(tt.input, 1, nil)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if len(fields) != len(tt.fields) {
				t.Fatalf("got %d fields, want %d", len(fields), len(tt.fields))
			}
			for i, w := range tt.fields {
				if fields[i].Value != w {
					t.Errorf("field %d = %q, want %q", i, fields[i].Value, w)
				}
			}
		})
	}
}

func TestTokenize_DanglingEscape(t *testing.T) {
	opts := Options{Comma: ',', Quote: '"', Escape: '\\'}
	_, _, err := opts.Tokenize(`a\`, 1, nil)
	if err == nil {
		t.Fatal("dangling escape succeeded, want error")
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"semicolon delimiter", Options{Comma: ';', Quote: '"'}, false},
		{"escape configured", Options{Comma: ',', Quote: '"', Escape: '\\'}, false},
		{"zero delimiter", Options{Quote: '"'}, true},
		{"newline delimiter", Options{Comma: '\n', Quote: '"'}, true},
		{"delimiter equals quote", Options{Comma: '"', Quote: '"'}, true},
		{"escape equals quote", Options{Comma: ',', Quote: '"', Escape: '"'}, true},
		{"escape equals delimiter", Options{Comma: ',', Quote: '"', Escape: ','}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{Line: 2, Pos: 7, Message: "unterminated quoted field"}
	got := e.Error()
	if !strings.Contains(got, "line 2") || !strings.Contains(got, "position 7") {
		t.Errorf("Error() = %q, want line and position in message", got)
	}
}
