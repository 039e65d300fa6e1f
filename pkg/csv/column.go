// Package csv provides column declaration and configuration.
package csv

// ColumnType names a built-in converter in a registry.
type ColumnType string

const (
	ColumnTypeString ColumnType = "string"
	ColumnTypeInt    ColumnType = "int"
	ColumnTypeFloat  ColumnType = "float"
	ColumnTypeBool   ColumnType = "bool"
	ColumnTypeDate   ColumnType = "date"
	ColumnTypeEnum   ColumnType = "enum"
)

// ColumnDefinition declares a single column of the mapping.
type ColumnDefinition struct {
	// Name is the column header name.
	Name string
	// Type selects a converter from the registry. Default: string.
	Type ColumnType
	// Converter overrides Type with an explicit converter instance.
	Converter Converter
	// Format is the converter-specific format string. Empty selects the
	// converter's default.
	Format string
	// Flags are converter-specific flag bits.
	Flags int64
	// Required indicates the column must have a non-empty value.
	Required bool
	// Default is substituted for empty unquoted fields when reading. An
	// explicitly quoted empty field ("") suppresses it.
	Default string
	// TrimInput trims surrounding whitespace from the raw token before
	// conversion, in addition to any converter that always trims.
	TrimInput bool
}

// Schema declares the columns of the mapping in order. Column order is
// fixed at declaration and identical for the header, reading, and writing.
type Schema struct {
	// Columns are the declared columns in order.
	Columns []ColumnDefinition
}

// NewSchema creates a new empty schema.
func NewSchema() *Schema {
	return &Schema{Columns: make([]ColumnDefinition, 0)}
}

// AddColumn adds a column definition to the schema.
func (s *Schema) AddColumn(col ColumnDefinition) *Schema {
	s.Columns = append(s.Columns, col)
	return s
}

// AddSimpleColumn adds a column with just name and type.
func (s *Schema) AddSimpleColumn(name string, colType ColumnType) *Schema {
	return s.AddColumn(ColumnDefinition{Name: name, Type: colType})
}

// AddRequiredColumn adds a required column with name and type.
func (s *Schema) AddRequiredColumn(name string, colType ColumnType) *Schema {
	return s.AddColumn(ColumnDefinition{Name: name, Type: colType, Required: true})
}

// ColumnInfo is the configured, immutable form of one column. The
// converter's configuration object is computed once at construction and
// never mutated afterwards, so ColumnInfo values may be shared read-only
// across processors.
type ColumnInfo struct {
	name         string
	format       string
	flags        int64
	required     bool
	defaultValue string
	trimInput    bool
	converter    Converter
	config       interface{}
	index        int
}

// newColumnInfo resolves the column's converter and runs its one-time
// configuration. Configuration failures are fatal for the whole setup.
func newColumnInfo(def ColumnDefinition, index int, registry *ConverterRegistry) (*ColumnInfo, error) {
	if def.Name == "" {
		return nil, &ConfigError{Message: "column name must not be empty"}
	}
	conv := def.Converter
	if conv == nil {
		colType := def.Type
		if colType == "" {
			colType = ColumnTypeString
		}
		var ok bool
		conv, ok = registry.Get(colType)
		if !ok {
			return nil, &ConfigError{Column: def.Name, Message: "no converter registered for type " + string(colType)}
		}
	}
	col := &ColumnInfo{
		name:         def.Name,
		format:       def.Format,
		flags:        def.Flags,
		required:     def.Required,
		defaultValue: def.Default,
		trimInput:    def.TrimInput,
		converter:    conv,
		index:        index,
	}
	config, err := conv.Configure(def.Format, def.Flags, col)
	if err != nil {
		return nil, &ConfigError{Column: def.Name, Message: "invalid converter configuration", Err: err}
	}
	col.config = config
	return col, nil
}

// Name returns the column header name.
func (c *ColumnInfo) Name() string { return c.name }

// Format returns the converter-specific format string.
func (c *ColumnInfo) Format() string { return c.format }

// Flags returns the converter-specific flag bits.
func (c *ColumnInfo) Flags() int64 { return c.flags }

// Required reports whether the column must have a non-empty value.
func (c *ColumnInfo) Required() bool { return c.required }

// Default returns the value substituted for empty unquoted fields.
func (c *ColumnInfo) Default() string { return c.defaultValue }

// Converter returns the column's converter.
func (c *ColumnInfo) Converter() Converter { return c.converter }

// Config returns the converter's cached configuration object.
func (c *ColumnInfo) Config() interface{} { return c.config }

// Index returns the column's 0-based position in the schema.
func (c *ColumnInfo) Index() int { return c.index }
