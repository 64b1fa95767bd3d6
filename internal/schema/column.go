package schema

import (
	"fmt"

	"github.com/relmap/relmap/internal/meta"
)

// defaultVarcharSize is applied when a VARCHAR column declares no size.
const defaultVarcharSize = 255

// ResolveColumn derives a column definition from a field's declared metadata
// and native kind. It returns ok=false when the field carries no column
// marker or is ignored; that is a valid non-error outcome. tableNaming is the
// strategy inherited from the table unless the field overrides it.
func ResolveColumn(f meta.FieldMeta, tableNaming NamingStrategy) (ColumnDefinition, bool, error) {
	if f.Ignored {
		return ColumnDefinition{}, false, nil
	}

	marker := f.Column
	isID := false
	if f.ID != nil {
		marker = f.ID
		isID = true
	}
	if marker == nil {
		return ColumnDefinition{}, false, nil
	}

	naming := tableNaming
	if f.Naming != "" {
		parsed, err := ParseNamingStrategy(f.Naming)
		if err != nil {
			return ColumnDefinition{}, false, fmt.Errorf("field %s: %w", f.FieldName, err)
		}
		naming = parsed
	}

	name := marker.Name
	if name == "" {
		name = naming.Apply(f.FieldName)
	}

	sqlType, err := resolveType(f)
	if err != nil {
		return ColumnDefinition{}, false, fmt.Errorf("field %s: %w", f.FieldName, err)
	}

	// An id column is implicitly non-nullable; primary keys are never null.
	nullable := marker.Nullable && !isID
	if nullable && !f.CanBeNil {
		return ColumnDefinition{}, false,
			fmt.Errorf("field %s: %w", f.FieldName, ErrNonNullableMismatch)
	}

	def := ""
	switch {
	case f.Default != nil:
		def = *f.Default
	case nullable:
		def = DefaultNull
	}

	col := ColumnDefinition{
		Name:          name,
		Type:          sqlType,
		Nullable:      nullable,
		Precision:     marker.Precision,
		Size:          marker.Size,
		Values:        f.Values,
		Default:       def,
		Primary:       isID,
		AutoIncrement: isID,
		Unsigned:      f.Unsigned,
		Zerofill:      f.Zerofill,
	}

	// Uniqueness adds nothing on a primary key column.
	if !col.Primary {
		col.Unique = marker.Unique
	}

	// Auto-refresh on update only applies to time-valued columns.
	if f.UpdateTimestamp && sqlType.IsTemporal() {
		col.UpdateTimestamp = true
	}

	if col.Type == TypeVarchar && col.Size == 0 {
		col.Size = defaultVarcharSize
	}

	return col, true, nil
}

// resolveType picks the SQL type: an explicit override wins, otherwise the
// type is inferred from the native kind.
func resolveType(f meta.FieldMeta) (SQLType, error) {
	if f.TypeOverride != "" {
		return SQLType(f.TypeOverride), nil
	}

	switch f.Kind {
	case meta.NativeString:
		if len(f.Values) > 0 {
			return TypeEnum, nil
		}
		return TypeVarchar, nil
	case meta.NativeInt:
		return TypeInt, nil
	case meta.NativeFloat:
		return TypeFloat, nil
	case meta.NativeBool:
		return TypeBool, nil
	case meta.NativeTime:
		return TypeDateTime, nil
	case meta.NativeStringSlice:
		return TypeSet, nil
	default:
		return "", fmt.Errorf("%w: %s (declare an explicit type override)", ErrUnmappableType, f.Kind)
	}
}
