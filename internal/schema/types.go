// Package schema resolves declarative type metadata into relational table
// definitions and holds them in a dependency-aware registry. Resolution is
// pure: the same metadata always yields the same definitions, and every
// structural error is raised before anything is registered.
package schema

// SQLType is a column's SQL type name in the target dialect.
type SQLType string

const (
	TypeVarchar  SQLType = "VARCHAR"
	TypeText     SQLType = "TEXT"
	TypeInt      SQLType = "INT"
	TypeBigInt   SQLType = "BIGINT"
	TypeFloat    SQLType = "FLOAT"
	TypeDecimal  SQLType = "DECIMAL"
	TypeBool     SQLType = "BOOL"
	TypeDateTime SQLType = "DATETIME"
	TypeEnum     SQLType = "ENUM"
	TypeSet      SQLType = "SET"
)

// IsTemporal returns true for time-valued types
func (t SQLType) IsTemporal() bool {
	return t == TypeDateTime
}

// DefaultNull is the default expression that emits DEFAULT NULL unquoted.
const DefaultNull = "NULL"

// ColumnDefinition is one fully resolved column. A primary column is
// implicitly unique and never nullable; Unique is only meaningful on
// non-primary columns.
type ColumnDefinition struct {
	Name            string
	Type            SQLType
	Nullable        bool
	Unique          bool
	Precision       int
	Size            int
	Values          []string // only meaningful for ENUM/SET
	Default         string   // "NULL", raw text, or "" for no default clause
	AutoIncrement   bool
	Primary         bool
	Unsigned        bool
	Zerofill        bool
	UpdateTimestamp bool
}

// UniqueConstraint is a named unique constraint over an ordered column list.
type UniqueConstraint struct {
	Name    string
	Columns []string
}

// ForeignKey references another table by name, not by pointer; the target
// table may not be registered when the constraint is resolved.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// TriggerTiming selects the trigger timing word.
type TriggerTiming int

// TriggerEvent selects the trigger firing event word.
type TriggerEvent int

const (
	TimingBefore TriggerTiming = iota
	TimingAfter
)

const (
	EventInsert TriggerEvent = iota
	EventUpdate
	EventDelete
)

var timingWords = [...]string{"BEFORE", "AFTER"}
var eventWords = [...]string{"INSERT", "UPDATE", "DELETE"}

// String returns the SQL timing word
func (t TriggerTiming) String() string {
	if int(t) < 0 || int(t) >= len(timingWords) {
		return "BEFORE"
	}
	return timingWords[t]
}

// String returns the SQL event word
func (e TriggerEvent) String() string {
	if int(e) < 0 || int(e) >= len(eventWords) {
		return "INSERT"
	}
	return eventWords[e]
}

// Trigger is collected verbatim from metadata, no validation beyond
// structural presence.
type Trigger struct {
	Name   string
	Timing TriggerTiming
	Event  TriggerEvent
	Body   string
}

// SeedData is a set of rows to insert when the table is created.
type SeedData struct {
	Columns []string
	Rows    [][]string
}

// TableDefinition is one fully resolved table. Column order follows field
// declaration order and is significant for DDL layout.
type TableDefinition struct {
	Name string

	// PrimaryKey is the resolved primary key column name, "" when the table
	// has none. PrimaryInline reports whether it came from a column marker
	// (rendered inline) rather than a table-level declaration.
	PrimaryKey    string
	PrimaryInline bool

	Columns     []ColumnDefinition
	Uniques     []UniqueConstraint
	ForeignKeys []ForeignKey
	Triggers    []Trigger
	Seeds       []SeedData
}

// Column returns the column with the given name
func (t *TableDefinition) Column(name string) (ColumnDefinition, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}

// HasColumn reports whether the table defines the named column
func (t *TableDefinition) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// References reports whether any foreign key targets the named table
func (t *TableDefinition) References(table string) bool {
	for _, fk := range t.ForeignKeys {
		if fk.RefTable == table {
			return true
		}
	}
	return false
}
