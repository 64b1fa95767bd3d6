package compile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/relmap/relmap/internal/schema"
)

// rawExprPattern recognizes the {query: <text>} escape that marks a seed
// value as raw SQL rather than a quoted literal.
var rawExprPattern = regexp.MustCompile(`^\{query:\s*(.*?)\s*\}$`)

// QuoteIdentifier quotes a table or column name for the target dialect
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// quoteLiteral single-quotes a value, doubling embedded quotes
func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// renderCreateBody renders the parenthesized column/constraint list: columns
// in declaration order, a table-level primary key when declared, then unique
// constraints, then inline foreign keys.
func renderCreateBody(t *schema.TableDefinition) string {
	var lines []string

	for _, col := range t.Columns {
		lines = append(lines, renderColumn(col))
	}

	if t.PrimaryKey != "" && !t.PrimaryInline {
		lines = append(lines, fmt.Sprintf("PRIMARY KEY (%s)", QuoteIdentifier(t.PrimaryKey)))
	}

	for _, u := range t.Uniques {
		cols := make([]string, len(u.Columns))
		for i, c := range u.Columns {
			cols[i] = QuoteIdentifier(c)
		}
		lines = append(lines, fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)",
			QuoteIdentifier(u.Name), strings.Join(cols, ", ")))
	}

	for _, fk := range t.ForeignKeys {
		lines = append(lines, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			QuoteIdentifier(fk.Column), QuoteIdentifier(fk.RefTable), QuoteIdentifier(fk.RefColumn)))
	}

	var b strings.Builder
	b.WriteString("(\n")
	for i, line := range lines {
		b.WriteString("  ")
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// renderColumn renders one column definition line
func renderColumn(col schema.ColumnDefinition) string {
	parts := []string{QuoteIdentifier(col.Name), renderType(col)}

	if col.Unsigned {
		parts = append(parts, "UNSIGNED")
	}
	if col.Zerofill {
		parts = append(parts, "ZEROFILL")
	}

	if col.Nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}

	if col.Default != "" {
		if col.Default == schema.DefaultNull {
			parts = append(parts, "DEFAULT NULL")
		} else {
			parts = append(parts, "DEFAULT "+quoteLiteral(col.Default))
		}
	}

	if col.UpdateTimestamp {
		parts = append(parts, "ON UPDATE CURRENT_TIMESTAMP")
	}
	if col.AutoIncrement {
		parts = append(parts, "AUTO_INCREMENT")
	}
	if col.Primary {
		parts = append(parts, "PRIMARY KEY")
	} else if col.Unique {
		parts = append(parts, "UNIQUE")
	}

	return strings.Join(parts, " ")
}

// renderType renders the SQL type with its size, precision, or literal values
func renderType(col schema.ColumnDefinition) string {
	switch col.Type {
	case schema.TypeEnum, schema.TypeSet:
		values := make([]string, len(col.Values))
		for i, v := range col.Values {
			values[i] = quoteLiteral(v)
		}
		return fmt.Sprintf("%s(%s)", col.Type, strings.Join(values, ", "))
	case schema.TypeDecimal:
		if col.Precision > 0 {
			return fmt.Sprintf("%s(%d)", col.Type, col.Precision)
		}
	case schema.TypeVarchar, schema.TypeInt, schema.TypeBigInt:
		if col.Size > 0 {
			return fmt.Sprintf("%s(%d)", col.Type, col.Size)
		}
	}
	return string(col.Type)
}

// renderSeedRow renders one seed tuple. Entries beyond the declared row are
// padded from the column's stored default: a NULL (or absent) default is
// emitted unquoted, any other default is quoted.
func renderSeedRow(t *schema.TableDefinition, seed schema.SeedData, row []string) string {
	vals := make([]string, len(seed.Columns))
	for i, colName := range seed.Columns {
		if i < len(row) {
			vals[i] = renderSeedValue(row[i])
			continue
		}

		def := ""
		if col, ok := t.Column(colName); ok {
			def = col.Default
		}
		if def == "" || def == schema.DefaultNull {
			vals[i] = "NULL"
		} else {
			vals[i] = quoteLiteral(def)
		}
	}
	return "(" + strings.Join(vals, ", ") + ")"
}

// renderSeedValue renders one seed entry, honoring the raw-expression escape.
// Raw expressions bypass quoting; the caller is responsible for the text
// being safe SQL.
func renderSeedValue(v string) string {
	if m := rawExprPattern.FindStringSubmatch(v); m != nil {
		return "(" + m[1] + ")"
	}
	return quoteLiteral(v)
}
