// Package export renders a compiled schema as SQL scripts or drives it
// against a gateway inside one transaction.
package export

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/relmap/relmap/internal/compile"
	"github.com/relmap/relmap/internal/gateway"
)

// Mode selects how statements handle pre-existing objects.
type Mode int

const (
	// ModeStrict emits plain statements that fail on existing objects
	ModeStrict Mode = iota
	// ModeTolerant emits the dialect's idempotency clause per statement kind:
	// IF NOT EXISTS for tables, DROP TRIGGER IF EXISTS before triggers, and
	// INSERT IGNORE for seed rows
	ModeTolerant
)

// Kind selects which statement kinds a rendering includes.
type Kind int

const (
	// KindTables renders CREATE TABLE statements only
	KindTables Kind = iota
	// KindTriggers renders trigger statements only
	KindTriggers
	// KindRecords renders seed INSERT statements only
	KindRecords
	// KindAll renders everything in apply order
	KindAll
)

// Exporter renders and applies a compiled schema.
type Exporter struct {
	schema *compile.Schema
	logger *zap.Logger
}

// Option configures an Exporter
type Option func(*Exporter)

// WithLogger attaches a logger for apply progress
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// NewExporter creates an exporter for a compiled schema
func NewExporter(s *compile.Schema, opts ...Option) *Exporter {
	e := &Exporter{schema: s, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render produces the script for the requested statement kinds. The same
// compiled schema can be rendered repeatedly with different modes.
func (e *Exporter) Render(kind Kind, mode Mode) string {
	var b strings.Builder
	for _, stmt := range e.statements(kind, mode) {
		b.WriteString(stmt)
		b.WriteString("\n")
	}
	return b.String()
}

// Apply drives the schema against the gateway inside one transaction:
// tables, then triggers, then seed records. The first failed statement
// aborts and rolls back; nothing partial is left visible. On success it
// returns the number of applied table-creation statements.
func (e *Exporter) Apply(ctx context.Context, gw gateway.Gateway, mode Mode) (int, error) {
	if err := gw.Begin(ctx); err != nil {
		return 0, err
	}

	created := 0
	for _, frag := range e.schema.Tables {
		stmt := renderCreateTable(frag, mode)
		if err := gw.Exec(ctx, stmt); err != nil {
			return 0, e.abort(gw, fmt.Errorf("table %s: %w", frag.Table, err))
		}
		created++
		e.logger.Info("created table", zap.String("table", frag.Table))
	}

	for _, frag := range e.schema.Tables {
		for _, tr := range frag.Triggers {
			for _, stmt := range renderTrigger(tr, mode) {
				if err := gw.Exec(ctx, stmt); err != nil {
					return 0, e.abort(gw, fmt.Errorf("trigger %s: %w", tr.Name, err))
				}
			}
			e.logger.Info("created trigger",
				zap.String("table", frag.Table), zap.String("trigger", tr.Name))
		}
	}

	for _, frag := range e.schema.Tables {
		for _, ins := range frag.Inserts {
			stmt := renderInsert(ins, mode)
			if err := gw.Exec(ctx, stmt); err != nil {
				return 0, e.abort(gw, fmt.Errorf("records for %s: %w", ins.Table, err))
			}
			e.logger.Info("seeded records",
				zap.String("table", ins.Table), zap.Int("rows", len(ins.Rows)))
		}
	}

	if err := gw.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

// abort rolls back and returns the original failure
func (e *Exporter) abort(gw gateway.Gateway, err error) error {
	if rbErr := gw.Rollback(); rbErr != nil {
		e.logger.Warn("rollback failed", zap.Error(rbErr))
	}
	return err
}

// statements assembles the final statement texts in apply order
func (e *Exporter) statements(kind Kind, mode Mode) []string {
	var out []string

	if kind == KindTables || kind == KindAll {
		for _, frag := range e.schema.Tables {
			out = append(out, renderCreateTable(frag, mode))
		}
	}
	if kind == KindTriggers || kind == KindAll {
		for _, frag := range e.schema.Tables {
			for _, tr := range frag.Triggers {
				out = append(out, renderTrigger(tr, mode)...)
			}
		}
	}
	if kind == KindRecords || kind == KindAll {
		for _, frag := range e.schema.Tables {
			for _, ins := range frag.Inserts {
				out = append(out, renderInsert(ins, mode))
			}
		}
	}

	return out
}

// renderCreateTable assembles the CREATE TABLE statement for a fragment
func renderCreateTable(frag compile.TableFragment, mode Mode) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if mode == ModeTolerant {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(compile.QuoteIdentifier(frag.Table))
	b.WriteString(" ")
	b.WriteString(frag.CreateBody)
	b.WriteString(";")
	return b.String()
}

// renderTrigger assembles the trigger statements for a fragment. Tolerant
// mode drops a pre-existing trigger of the same name first.
func renderTrigger(tr compile.TriggerFragment, mode Mode) []string {
	var out []string
	if mode == ModeTolerant {
		out = append(out, fmt.Sprintf("DROP TRIGGER IF EXISTS %s;",
			compile.QuoteIdentifier(tr.Name)))
	}
	out = append(out, fmt.Sprintf("CREATE TRIGGER %s %s %s ON %s FOR EACH ROW %s;",
		compile.QuoteIdentifier(tr.Name), tr.Timing, tr.Event,
		compile.QuoteIdentifier(tr.Table), tr.Body))
	return out
}

// renderInsert assembles one seed INSERT statement
func renderInsert(ins compile.InsertFragment, mode Mode) string {
	cols := make([]string, len(ins.Columns))
	for i, c := range ins.Columns {
		cols[i] = compile.QuoteIdentifier(c)
	}

	var b strings.Builder
	b.WriteString("INSERT ")
	if mode == ModeTolerant {
		b.WriteString("IGNORE ")
	}
	b.WriteString("INTO ")
	b.WriteString(compile.QuoteIdentifier(ins.Table))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES\n  ")
	b.WriteString(strings.Join(ins.Rows, ",\n  "))
	b.WriteString(";")
	return b.String()
}
