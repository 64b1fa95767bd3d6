// Package modelfile loads declarative model documents and turns them into
// metadata descriptors, so schemas can be compiled without Go code attached
// to the types.
package modelfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relmap/relmap/internal/meta"
)

// Document is the root of a model file.
type Document struct {
	Types []TypeDoc `yaml:"types"`
}

// TypeDoc describes one mapped type.
type TypeDoc struct {
	Type       string          `yaml:"type"`
	Table      *string         `yaml:"table"` // nil means no table marker
	Ignore     bool            `yaml:"ignore"`
	PrimaryKey string          `yaml:"primary_key"`
	Naming     string          `yaml:"naming"`
	Fields     []FieldDoc      `yaml:"fields"`
	Uniques    []UniqueDoc     `yaml:"unique"`
	References []ForeignKeyDoc `yaml:"references"`
	Triggers   []TriggerDoc    `yaml:"triggers"`
	Records    []SeedDoc       `yaml:"records"`
}

// FieldDoc describes one field. A listed field maps to a column unless
// ignore is set; id selects the auto-incrementing primary key marker.
type FieldDoc struct {
	Field           string   `yaml:"field"`
	Kind            string   `yaml:"kind"`
	Pointer         bool     `yaml:"pointer"`
	Ignore          bool     `yaml:"ignore"`
	ID              bool     `yaml:"id"`
	Column          string   `yaml:"column"`
	Nullable        bool     `yaml:"nullable"`
	Unique          bool     `yaml:"unique"`
	Size            int      `yaml:"size"`
	Precision       int      `yaml:"precision"`
	Type            string   `yaml:"sql_type"`
	Values          []string `yaml:"values"`
	Default         *string  `yaml:"default"`
	Unsigned        bool     `yaml:"unsigned"`
	Zerofill        bool     `yaml:"zerofill"`
	UpdateTimestamp bool     `yaml:"update_timestamp"`
	Naming          string   `yaml:"naming"`
}

// UniqueDoc describes a named unique constraint.
type UniqueDoc struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// ForeignKeyDoc describes a foreign key.
type ForeignKeyDoc struct {
	Column    string `yaml:"column"`
	Table     string `yaml:"table"`
	RefColumn string `yaml:"ref_column"`
}

// TriggerDoc describes a trigger with its word-table indices.
type TriggerDoc struct {
	Name   string `yaml:"name"`
	Timing int    `yaml:"timing"`
	Event  int    `yaml:"event"`
	Body   string `yaml:"body"`
}

// SeedDoc describes seed rows for a column list.
type SeedDoc struct {
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
}

// Load reads and parses a model file
func Load(path string) ([]meta.TypeMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return Parse(data)
}

// Parse parses a model document into metadata descriptors
func Parse(data []byte) ([]meta.TypeMeta, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse model file: %w", err)
	}

	types := make([]meta.TypeMeta, 0, len(doc.Types))
	for _, td := range doc.Types {
		tm, err := toTypeMeta(td)
		if err != nil {
			return nil, err
		}
		types = append(types, tm)
	}
	return types, nil
}

// toTypeMeta converts one document entry to its descriptor form
func toTypeMeta(td TypeDoc) (meta.TypeMeta, error) {
	tm := meta.TypeMeta{
		TypeName:   td.Type,
		Ignored:    td.Ignore,
		PrimaryKey: td.PrimaryKey,
		Naming:     td.Naming,
	}

	if td.Table != nil {
		tm.Table = &meta.TableMarker{Name: *td.Table}
	}

	for _, fd := range td.Fields {
		fm, err := toFieldMeta(td.Type, fd)
		if err != nil {
			return meta.TypeMeta{}, err
		}
		tm.Fields = append(tm.Fields, fm)
	}

	for _, u := range td.Uniques {
		tm.Uniques = append(tm.Uniques, meta.UniqueConstraint{Name: u.Name, Columns: u.Columns})
	}
	for _, fk := range td.References {
		tm.ForeignKeys = append(tm.ForeignKeys, meta.ForeignKey{
			Column:    fk.Column,
			RefTable:  fk.Table,
			RefColumn: fk.RefColumn,
		})
	}
	for _, tr := range td.Triggers {
		tm.Triggers = append(tm.Triggers, meta.Trigger{
			Name:   tr.Name,
			Timing: tr.Timing,
			Event:  tr.Event,
			Body:   tr.Body,
		})
	}
	for _, s := range td.Records {
		tm.Seeds = append(tm.Seeds, meta.SeedSet{Columns: s.Columns, Rows: s.Rows})
	}

	return tm, nil
}

// toFieldMeta converts one field entry to its descriptor form
func toFieldMeta(typeName string, fd FieldDoc) (meta.FieldMeta, error) {
	kind, err := parseKind(fd.Kind)
	if err != nil {
		return meta.FieldMeta{}, fmt.Errorf("type %s, field %s: %w", typeName, fd.Field, err)
	}

	fm := meta.FieldMeta{
		FieldName:       fd.Field,
		Kind:            kind,
		CanBeNil:        fd.Pointer,
		Ignored:         fd.Ignore,
		TypeOverride:    fd.Type,
		Values:          fd.Values,
		Default:         fd.Default,
		Unsigned:        fd.Unsigned,
		Zerofill:        fd.Zerofill,
		UpdateTimestamp: fd.UpdateTimestamp,
		Naming:          fd.Naming,
	}

	marker := meta.ColumnMarker{
		Name:      fd.Column,
		Nullable:  fd.Nullable,
		Unique:    fd.Unique,
		Size:      fd.Size,
		Precision: fd.Precision,
	}
	if fd.ID {
		fm.ID = &marker
	} else if !fd.Ignore {
		fm.Column = &marker
	}

	return fm, nil
}

// parseKind maps the document's kind name to a NativeKind
func parseKind(kind string) (meta.NativeKind, error) {
	switch kind {
	case "", "string":
		return meta.NativeString, nil
	case "int":
		return meta.NativeInt, nil
	case "float":
		return meta.NativeFloat, nil
	case "bool":
		return meta.NativeBool, nil
	case "time":
		return meta.NativeTime, nil
	case "strings":
		return meta.NativeStringSlice, nil
	default:
		return 0, fmt.Errorf("unknown native kind: %s", kind)
	}
}
