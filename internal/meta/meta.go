// Package meta defines the declarative metadata descriptors consumed by the
// schema engine. A TypeMeta is the complete, ordered description of one mapped
// type: repeatable items (constraints, triggers, seed records) live at the type
// level, singular items (markers, overrides, flags) at the field level. The
// engine never inspects a runtime type system; descriptors are assembled by a
// code generator, the modelfile loader, or by hand through the builder.
package meta

// NativeKind classifies a field's native representation for type inference.
type NativeKind int

const (
	// NativeString is a textual value
	NativeString NativeKind = iota
	// NativeInt is an integer value
	NativeInt
	// NativeFloat is a floating-point value
	NativeFloat
	// NativeBool is a boolean value
	NativeBool
	// NativeTime is a date/time value
	NativeTime
	// NativeStringSlice is a list of textual values
	NativeStringSlice
	// NativeUnsupported is any representation the engine cannot map without
	// an explicit type override
	NativeUnsupported
)

// String returns the string representation of the native kind
func (k NativeKind) String() string {
	switch k {
	case NativeString:
		return "string"
	case NativeInt:
		return "int"
	case NativeFloat:
		return "float"
	case NativeBool:
		return "bool"
	case NativeTime:
		return "time"
	case NativeStringSlice:
		return "strings"
	default:
		return "unsupported"
	}
}

// ColumnMarker marks a field as mapped to a column. The zero value of every
// attribute means "not declared"; resolution fills in the rest.
type ColumnMarker struct {
	Name      string // explicit column name, "" applies the naming strategy
	Nullable  bool
	Unique    bool
	Precision int
	Size      int
}

// FieldMeta is the full set of singular metadata items declared on one field.
type FieldMeta struct {
	FieldName string
	Kind      NativeKind
	CanBeNil  bool // whether the native representation can express absence

	Column  *ColumnMarker // generic column marker
	ID      *ColumnMarker // id marker: primary + auto-increment + non-nullable
	Ignored bool

	TypeOverride    string   // explicit SQL type name, "" infers from Kind
	Values          []string // enum/set literal values
	Default         *string  // explicit default expression, nil means none declared
	Unsigned        bool
	Zerofill        bool
	UpdateTimestamp bool
	Naming          string // field-level naming strategy override, "" inherits
}

// TableMarker marks a type as mapped to a table.
type TableMarker struct {
	Name string // explicit table name, "" applies the naming strategy
}

// UniqueConstraint declares a named table-wide unique constraint.
type UniqueConstraint struct {
	Name    string
	Columns []string
}

// ForeignKey declares a reference from a column to another table's column.
// The target table is referenced by name and may not be registered yet.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Trigger declares a trigger verbatim. Timing and Event are indices into the
// fixed word tables (timing: 0 BEFORE, 1 AFTER; event: 0 INSERT, 1 UPDATE,
// 2 DELETE).
type Trigger struct {
	Name   string
	Timing int
	Event  int
	Body   string
}

// SeedSet declares rows to insert when the table is created. A row shorter
// than Columns is padded from the column defaults at compile time; any entry
// may use the {query: ...} raw-expression escape.
type SeedSet struct {
	Columns []string
	Rows    [][]string
}

// TypeMeta is the complete declared metadata for one type.
type TypeMeta struct {
	TypeName string

	Table   *TableMarker // nil means the type maps to no table
	Ignored bool

	PrimaryKey  string // table-level primary key override, "" means none
	Naming      string // naming strategy override, "" uses the global default
	Uniques     []UniqueConstraint
	ForeignKeys []ForeignKey
	Triggers    []Trigger
	Seeds       []SeedSet

	Fields []FieldMeta // declaration order is significant
}
