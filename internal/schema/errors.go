package schema

import "errors"

// Resolution and registration errors. All are raised synchronously at the
// point of resolution or registration; no partially resolved table is ever
// left registered.
var (
	// ErrDuplicateTable is returned when a table with the same name is already registered
	ErrDuplicateTable = errors.New("duplicate table")

	// ErrMultiplePrimaryKeys is returned when more than one column is marked primary
	ErrMultiplePrimaryKeys = errors.New("multiple primary keys")

	// ErrConflictingPrimaryKey is returned when a table-level primary key
	// override is declared while a column is already marked primary
	ErrConflictingPrimaryKey = errors.New("conflicting primary key declaration")

	// ErrUnknownPrimaryKeyColumn is returned when a table-level primary key
	// override names a column that does not exist
	ErrUnknownPrimaryKeyColumn = errors.New("unknown primary key column")

	// ErrUnknownConstraintColumn is returned when a unique or foreign key
	// constraint names a column that does not exist in the table
	ErrUnknownConstraintColumn = errors.New("unknown column in constraint")

	// ErrDuplicateColumn is returned when two fields resolve to the same column name
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrUnmappableType is returned when a native type cannot be inferred and
	// no explicit type override is declared
	ErrUnmappableType = errors.New("unmappable native type")

	// ErrNonNullableMismatch is returned when a column is declared nullable
	// but the field's native type cannot represent an absent value
	ErrNonNullableMismatch = errors.New("nullable column backed by non-nullable field")

	// ErrCircularForeignKey is returned when two tables reference each other directly
	ErrCircularForeignKey = errors.New("circular foreign key reference")

	// ErrUnsupportedNamingStrategy is returned for an unknown naming strategy name
	ErrUnsupportedNamingStrategy = errors.New("unsupported naming strategy")
)
