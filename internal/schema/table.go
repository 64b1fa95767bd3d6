package schema

import (
	"fmt"

	"github.com/relmap/relmap/internal/meta"
)

// ResolveTable derives a full table definition from a type's declared
// metadata. It returns ok=false when the type carries no table marker or an
// ignore marker; that is a valid non-error outcome. Errors propagate without
// producing a partial definition.
func ResolveTable(tm meta.TypeMeta) (*TableDefinition, bool, error) {
	if tm.Ignored || tm.Table == nil {
		return nil, false, nil
	}

	naming, err := ParseNamingStrategy(tm.Naming)
	if err != nil {
		return nil, false, fmt.Errorf("type %s: %w", tm.TypeName, err)
	}

	name := tm.Table.Name
	if name == "" {
		name = naming.Apply(tm.TypeName)
	}

	t := &TableDefinition{
		Name:     name,
		Triggers: resolveTriggers(tm.Triggers),
		Seeds:    resolveSeeds(tm.Seeds),
	}

	for _, f := range tm.Fields {
		col, ok, err := ResolveColumn(f, naming)
		if err != nil {
			return nil, false, fmt.Errorf("table %s: %w", name, err)
		}
		if !ok {
			continue
		}
		if t.HasColumn(col.Name) {
			return nil, false, fmt.Errorf("table %s: %w: %s", name, ErrDuplicateColumn, col.Name)
		}
		t.Columns = append(t.Columns, col)
	}

	if err := resolvePrimaryKey(t, tm); err != nil {
		return nil, false, err
	}

	for _, u := range tm.Uniques {
		for _, col := range u.Columns {
			if !t.HasColumn(col) {
				return nil, false, fmt.Errorf("table %s: unique constraint %s: %w: %s",
					name, u.Name, ErrUnknownConstraintColumn, col)
			}
		}
		t.Uniques = append(t.Uniques, UniqueConstraint{Name: u.Name, Columns: u.Columns})
	}

	// Only the source column is checked here; the target table may not be
	// registered yet.
	for _, fk := range tm.ForeignKeys {
		if !t.HasColumn(fk.Column) {
			return nil, false, fmt.Errorf("table %s: foreign key: %w: %s",
				name, ErrUnknownConstraintColumn, fk.Column)
		}
		t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
			Column:    fk.Column,
			RefTable:  fk.RefTable,
			RefColumn: fk.RefColumn,
		})
	}

	return t, true, nil
}

// resolvePrimaryKey reconciles column-level primary markers with a table-level
// primary key declaration. At most one of the two may designate the key.
func resolvePrimaryKey(t *TableDefinition, tm meta.TypeMeta) error {
	var primaries []string
	for _, c := range t.Columns {
		if c.Primary {
			primaries = append(primaries, c.Name)
		}
	}

	if len(primaries) > 1 {
		return fmt.Errorf("table %s: %w: %v", t.Name, ErrMultiplePrimaryKeys, primaries)
	}

	if tm.PrimaryKey != "" {
		if len(primaries) > 0 {
			return fmt.Errorf("table %s: %w: column %s is already primary",
				t.Name, ErrConflictingPrimaryKey, primaries[0])
		}
		if !t.HasColumn(tm.PrimaryKey) {
			return fmt.Errorf("table %s: %w: %s", t.Name, ErrUnknownPrimaryKeyColumn, tm.PrimaryKey)
		}
		t.PrimaryKey = tm.PrimaryKey
		return nil
	}

	if len(primaries) == 1 {
		t.PrimaryKey = primaries[0]
		t.PrimaryInline = true
	}
	return nil
}

func resolveTriggers(triggers []meta.Trigger) []Trigger {
	out := make([]Trigger, 0, len(triggers))
	for _, tr := range triggers {
		out = append(out, Trigger{
			Name:   tr.Name,
			Timing: TriggerTiming(tr.Timing),
			Event:  TriggerEvent(tr.Event),
			Body:   tr.Body,
		})
	}
	return out
}

func resolveSeeds(seeds []meta.SeedSet) []SeedData {
	out := make([]SeedData, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, SeedData{Columns: s.Columns, Rows: s.Rows})
	}
	return out
}
