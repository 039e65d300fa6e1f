package csv

import (
	"strings"
	"testing"
)

func str(s string) *string { return &s }

func TestWriteField(t *testing.T) {
	tests := []struct {
		name   string
		value  *string
		force  bool
		want   string
	}{
		{"plain", str("abc"), false, "abc"},
		{"empty", str(""), false, ""},
		{"embedded delimiter", str("a,b"), false, `"a,b"`},
		{"embedded quote", str(`a"b`), false, `"a""b"`},
		{"embedded newline", str("a\nb"), false, "\"a\nb\""},
		{"embedded carriage return", str("a\rb"), false, "\"a\rb\""},
		{"forced quotes", str("abc"), true, `"abc"`},
		{"forced quotes on empty", str(""), true, `""`},
		{"nil unquoted", nil, false, ""},
		{"nil with forced quotes", nil, true, `""`},
		{"only quotes", str(`""`), false, `""""""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			writeField(&buf, tt.value, tt.force, ',', '"')
			if got := buf.String(); got != tt.want {
				t.Errorf("writeField = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderLine(t *testing.T) {
	got := renderLine(
		[]*string{str("a"), nil, str("c,d")},
		[]bool{false, false, false},
		',', '"',
	)
	want := `a,,"c,d"`
	if got != want {
		t.Errorf("renderLine = %q, want %q", got, want)
	}
}

func TestRenderLine_CustomDelimiter(t *testing.T) {
	got := renderLine(
		[]*string{str("a;b"), str("c")},
		[]bool{false, false},
		';', '"',
	)
	want := `"a;b";c`
	if got != want {
		t.Errorf("renderLine = %q, want %q", got, want)
	}
}

func TestRenderLine_NoTrailingDelimiter(t *testing.T) {
	got := renderLine([]*string{str("a"), str("b")}, []bool{false, false}, ',', '"')
	if strings.HasSuffix(got, ",") {
		t.Errorf("renderLine = %q has a trailing delimiter", got)
	}
}
