package csv

// Converter is the pluggable codec for one field type. A converter instance
// is stateless and shared process-wide; everything column-specific lives in
// the configuration object it builds in Configure, which the caller caches
// on the ColumnInfo and passes back opaquely.
type Converter interface {
	// Configure builds the converter's private configuration from the
	// column's format string, flag bits, and metadata. It is called once
	// per column at setup time; a structurally malformed format is a fatal
	// configuration error, not a per-row ParseError.
	//
	// An empty format selects the converter's default behavior.
	Configure(format string, flags int64, col *ColumnInfo) (interface{}, error)

	// NeedsQuotes reports whether output for this configuration must be
	// quoted even when the text itself would not require it.
	NeedsQuotes(config interface{}) bool

	// AlwaysTrimInput reports whether surrounding whitespace must be
	// trimmed from the raw token before Parse is called.
	AlwaysTrimInput() bool

	// Format renders a typed value as its field text. A nil value returns
	// a nil pointer, propagating absence to the line writer.
	Format(col *ColumnInfo, value interface{}) (*string, error)

	// Parse converts one raw token into its typed value. An empty token
	// returns nil. Failures are recorded on perr with the supplied
	// coordinates and never abort the row from inside the converter; the
	// caller inspects perr and applies its own error policy.
	Parse(lineNumber int, linePos int, col *ColumnInfo, value string, perr *ParseError) interface{}
}

// ConverterRegistry manages named converters.
type ConverterRegistry struct {
	converters map[ColumnType]Converter
}

// NewConverterRegistry creates a registry pre-populated with the built-in
// converters.
func NewConverterRegistry() *ConverterRegistry {
	r := &ConverterRegistry{
		converters: make(map[ColumnType]Converter),
	}
	r.Register(ColumnTypeString, StringConverter{})
	r.Register(ColumnTypeInt, IntConverter{})
	r.Register(ColumnTypeFloat, FloatConverter{})
	r.Register(ColumnTypeBool, BooleanConverter{})
	r.Register(ColumnTypeDate, DateConverter{})
	r.Register(ColumnTypeEnum, EnumConverter{})
	return r
}

// Register adds a converter to the registry, replacing any previous entry
// for the type.
func (r *ConverterRegistry) Register(t ColumnType, conv Converter) {
	r.converters[t] = conv
}

// Get retrieves a converter by column type.
func (r *ConverterRegistry) Get(t ColumnType) (Converter, bool) {
	conv, ok := r.converters[t]
	return conv, ok
}

// defaultRegistry serves schemas that do not supply their own. The built-in
// converters are stateless, so sharing them across processors is safe.
var defaultRegistry = NewConverterRegistry()
