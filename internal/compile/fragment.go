package compile

// TableFragment holds one table's compiled parts. The parts are structural,
// not final statement text: the exporter assembles statements from them under
// a rendering mode, so one compiled schema can be rendered with different
// idempotency settings without recompiling.
type TableFragment struct {
	Table string

	// CreateBody is the parenthesized column/constraint list of the CREATE
	// TABLE statement, without the statement header.
	CreateBody string

	Triggers []TriggerFragment
	Inserts  []InsertFragment

	// References lists the outgoing foreign-key target table names used for
	// emission ordering.
	References []string
}

// TriggerFragment holds one trigger's compiled parts with the timing and
// event words already resolved.
type TriggerFragment struct {
	Name   string
	Table  string
	Timing string
	Event  string
	Body   string
}

// InsertFragment holds one seed set's compiled parts. Each row is a fully
// rendered parenthesized value tuple.
type InsertFragment struct {
	Table   string
	Columns []string
	Rows    []string
}

// Schema is the immutable compiled artifact: table fragments in emission
// order plus aggregate flags. It holds no reference back to the registry it
// was compiled from.
type Schema struct {
	Tables      []TableFragment
	HasTriggers bool
	HasRecords  bool
}
