// Package compile turns a registry of resolved tables into an immutable
// Schema of per-table DDL/DML fragments in dependency-respecting emission
// order.
package compile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/relmap/relmap/internal/schema"
)

// ErrUnresolvableReference is returned when the foreign-key graph contains a
// cycle the pairwise registration check could not catch: a full pass over the
// deferred tables makes no progress, so no valid emission order exists.
var ErrUnresolvableReference = errors.New("unresolvable foreign key reference order")

// Compiler converts registry contents into a Schema.
type Compiler struct{}

// NewCompiler creates a new schema compiler
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile builds the schema artifact. The registry is read once and the
// result holds no reference to it.
func (c *Compiler) Compile(reg *schema.Registry) (*Schema, error) {
	ordered, err := c.order(reg)
	if err != nil {
		return nil, err
	}

	s := &Schema{Tables: make([]TableFragment, 0, len(ordered))}
	for _, t := range ordered {
		frag := c.compileTable(t)
		if len(frag.Triggers) > 0 {
			s.HasTriggers = true
		}
		if len(frag.Inserts) > 0 {
			s.HasRecords = true
		}
		s.Tables = append(s.Tables, frag)
	}
	return s, nil
}

// compileTable renders one table's fragments
func (c *Compiler) compileTable(t *schema.TableDefinition) TableFragment {
	frag := TableFragment{
		Table:      t.Name,
		CreateBody: renderCreateBody(t),
	}

	for _, fk := range t.ForeignKeys {
		frag.References = append(frag.References, fk.RefTable)
	}

	for _, tr := range t.Triggers {
		frag.Triggers = append(frag.Triggers, TriggerFragment{
			Name:   tr.Name,
			Table:  t.Name,
			Timing: tr.Timing.String(),
			Event:  tr.Event.String(),
			Body:   tr.Body,
		})
	}

	for _, seed := range t.Seeds {
		ins := InsertFragment{Table: t.Name, Columns: seed.Columns}
		for _, row := range seed.Rows {
			ins.Rows = append(ins.Rows, renderSeedRow(t, seed, row))
		}
		frag.Inserts = append(frag.Inserts, ins)
	}

	return frag
}

// order computes the emission order: tables without outgoing references first
// in registration order, then a work-list over the deferred tables, each
// requeued until every table it references has emitted. References to tables
// outside the registry, and self-references, are treated as satisfied. A full
// rotation of the work-list without progress means a cycle survived the
// pairwise registration check; the loop fails instead of spinning.
func (c *Compiler) order(reg *schema.Registry) ([]*schema.TableDefinition, error) {
	registered := make(map[string]bool, reg.Len())
	for _, t := range reg.Tables() {
		registered[t.Name] = true
	}

	emitted := make(map[string]bool, reg.Len())
	var ordered, pending []*schema.TableDefinition

	for _, t := range reg.Tables() {
		if blockingRefs(t, registered, emitted) == 0 {
			ordered = append(ordered, t)
			emitted[t.Name] = true
		} else {
			pending = append(pending, t)
		}
	}

	stalled := 0
	for len(pending) > 0 {
		t := pending[0]
		pending = pending[1:]

		if blockingRefs(t, registered, emitted) == 0 {
			ordered = append(ordered, t)
			emitted[t.Name] = true
			stalled = 0
			continue
		}

		pending = append(pending, t)
		stalled++
		if stalled > len(pending) {
			names := make([]string, len(pending))
			for i, p := range pending {
				names[i] = p.Name
			}
			return nil, fmt.Errorf("%w: cycle among %s",
				ErrUnresolvableReference, strings.Join(names, ", "))
		}
	}

	return ordered, nil
}

// blockingRefs counts foreign-key targets that are registered but not yet emitted
func blockingRefs(t *schema.TableDefinition, registered, emitted map[string]bool) int {
	n := 0
	for _, fk := range t.ForeignKeys {
		if fk.RefTable == t.Name || !registered[fk.RefTable] {
			continue
		}
		if !emitted[fk.RefTable] {
			n++
		}
	}
	return n
}
