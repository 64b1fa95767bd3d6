package schema

import (
	"fmt"

	"github.com/relmap/relmap/internal/meta"
)

// Registry holds the resolved tables of one assembly session in registration
// order. It grows monotonically: there is no removal, and its contents are
// consumed exactly once by the compiler. Registration is single-writer; the
// registry is not safe for concurrent mutation.
type Registry struct {
	tables map[string]*TableDefinition
	order  []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*TableDefinition)}
}

// Register adds a resolved table. It fails with ErrDuplicateTable when the
// name is taken and with ErrCircularForeignKey when the incoming table and an
// already-registered table reference each other directly. The circularity
// check is pairwise only: longer cycles are not detected here and surface at
// compile time instead.
func (r *Registry) Register(t *TableDefinition) error {
	if _, exists := r.tables[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTable, t.Name)
	}

	for _, fk := range t.ForeignKeys {
		target, exists := r.tables[fk.RefTable]
		if exists && target.References(t.Name) {
			return fmt.Errorf("%w: %s and %s reference each other",
				ErrCircularForeignKey, t.Name, fk.RefTable)
		}
	}

	r.tables[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// RegisterTypes resolves each type's declared metadata and registers the
// resulting tables in order. Types without a table marker are skipped.
func (r *Registry) RegisterTypes(types ...meta.TypeMeta) error {
	for _, tm := range types {
		t, ok, err := ResolveTable(tm)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the table with the given name
func (r *Registry) Lookup(name string) (*TableDefinition, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Tables returns all registered tables in registration order
func (r *Registry) Tables() []*TableDefinition {
	out := make([]*TableDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tables[name])
	}
	return out
}

// Len returns the number of registered tables
func (r *Registry) Len() int {
	return len(r.order)
}
