package meta

// TypeBuilder assembles a TypeMeta by hand, primarily for tests and code that
// declares its model in Go rather than through generated descriptors.
type TypeBuilder struct {
	m TypeMeta
}

// NewType creates a builder for the named type
func NewType(name string) *TypeBuilder {
	return &TypeBuilder{m: TypeMeta{TypeName: name}}
}

// Table marks the type as mapped to a table. An empty name applies the active
// naming strategy to the type name.
func (b *TypeBuilder) Table(name string) *TypeBuilder {
	b.m.Table = &TableMarker{Name: name}
	return b
}

// Ignore marks the type as excluded from mapping
func (b *TypeBuilder) Ignore() *TypeBuilder {
	b.m.Ignored = true
	return b
}

// PrimaryKey declares a table-level primary key override
func (b *TypeBuilder) PrimaryKey(column string) *TypeBuilder {
	b.m.PrimaryKey = column
	return b
}

// Naming sets the table-level naming strategy override
func (b *TypeBuilder) Naming(strategy string) *TypeBuilder {
	b.m.Naming = strategy
	return b
}

// Unique declares a named unique constraint over the given columns
func (b *TypeBuilder) Unique(name string, columns ...string) *TypeBuilder {
	b.m.Uniques = append(b.m.Uniques, UniqueConstraint{Name: name, Columns: columns})
	return b
}

// References declares a foreign key from column to refTable(refColumn)
func (b *TypeBuilder) References(column, refTable, refColumn string) *TypeBuilder {
	b.m.ForeignKeys = append(b.m.ForeignKeys, ForeignKey{
		Column:    column,
		RefTable:  refTable,
		RefColumn: refColumn,
	})
	return b
}

// Trigger declares a trigger with timing/event word-table indices
func (b *TypeBuilder) Trigger(name string, timing, event int, body string) *TypeBuilder {
	b.m.Triggers = append(b.m.Triggers, Trigger{Name: name, Timing: timing, Event: event, Body: body})
	return b
}

// Seed declares seed rows for the given column list
func (b *TypeBuilder) Seed(columns []string, rows ...[]string) *TypeBuilder {
	b.m.Seeds = append(b.m.Seeds, SeedSet{Columns: columns, Rows: rows})
	return b
}

// Field appends a field in declaration order
func (b *TypeBuilder) Field(f *FieldBuilder) *TypeBuilder {
	b.m.Fields = append(b.m.Fields, f.Build())
	return b
}

// Build returns the assembled TypeMeta
func (b *TypeBuilder) Build() TypeMeta {
	return b.m
}

// FieldBuilder assembles a FieldMeta. Column attribute setters only take
// effect when a Column or ID marker is present; a field without a marker
// produces no column regardless of other items.
type FieldBuilder struct {
	f      FieldMeta
	marker ColumnMarker
}

// NewField creates a builder for the named field with its native kind
func NewField(name string, kind NativeKind) *FieldBuilder {
	return &FieldBuilder{f: FieldMeta{FieldName: name, Kind: kind}}
}

// Pointer records that the native representation can express absence
func (f *FieldBuilder) Pointer() *FieldBuilder {
	f.f.CanBeNil = true
	return f
}

// Column marks the field as a generic column
func (f *FieldBuilder) Column(name string) *FieldBuilder {
	f.marker.Name = name
	f.f.Column = &f.marker
	return f
}

// ID marks the field as the auto-incrementing primary key column
func (f *FieldBuilder) ID(name string) *FieldBuilder {
	f.marker.Name = name
	f.f.ID = &f.marker
	return f
}

// Ignore excludes the field from mapping
func (f *FieldBuilder) Ignore() *FieldBuilder {
	f.f.Ignored = true
	return f
}

// Nullable declares the column nullable
func (f *FieldBuilder) Nullable() *FieldBuilder {
	f.marker.Nullable = true
	return f
}

// Unique declares table-wide uniqueness for the column
func (f *FieldBuilder) Unique() *FieldBuilder {
	f.marker.Unique = true
	return f
}

// Size sets the declared column size (e.g. VARCHAR length)
func (f *FieldBuilder) Size(n int) *FieldBuilder {
	f.marker.Size = n
	return f
}

// Precision sets the declared numeric precision
func (f *FieldBuilder) Precision(n int) *FieldBuilder {
	f.marker.Precision = n
	return f
}

// Type sets an explicit SQL type override
func (f *FieldBuilder) Type(sqlType string) *FieldBuilder {
	f.f.TypeOverride = sqlType
	return f
}

// Values sets the enum/set literal values
func (f *FieldBuilder) Values(values ...string) *FieldBuilder {
	f.f.Values = values
	return f
}

// Default sets an explicit default expression
func (f *FieldBuilder) Default(expr string) *FieldBuilder {
	f.f.Default = &expr
	return f
}

// Unsigned declares the column unsigned
func (f *FieldBuilder) Unsigned() *FieldBuilder {
	f.f.Unsigned = true
	return f
}

// Zerofill declares the column zerofill
func (f *FieldBuilder) Zerofill() *FieldBuilder {
	f.f.Zerofill = true
	return f
}

// UpdateTimestamp declares auto-refresh on row update (time-valued columns)
func (f *FieldBuilder) UpdateTimestamp() *FieldBuilder {
	f.f.UpdateTimestamp = true
	return f
}

// Naming sets a field-level naming strategy override
func (f *FieldBuilder) Naming(strategy string) *FieldBuilder {
	f.f.Naming = strategy
	return f
}

// Build returns the assembled FieldMeta
func (f *FieldBuilder) Build() FieldMeta {
	return f.f
}
