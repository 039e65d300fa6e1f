package tokenizer

// Field is one raw field extracted from a logical CSV record.
type Field struct {
	// Value is the field text with quoting and escaping already undone.
	Value string
	// Quoted reports whether the field was surrounded by quote characters
	// in the input. Callers use this to tell an explicit "" apart from an
	// absent value.
	Quoted bool
	// Pos is the 0-based character position where the field started within
	// the logical record.
	Pos int
}

// LineSource supplies the next physical line when a quoted field continues
// past the end of the current one. The second result is false when no more
// input is available.
type LineSource func() (string, bool)

// Tokenizer states.
const (
	stateUnquoted   = iota // collecting an unquoted field
	stateQuoted            // inside a quoted field
	stateAfterQuote        // seen a closing quote, expect delimiter or doubled quote
)
