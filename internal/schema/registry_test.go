package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmap/relmap/internal/meta"
)

// table builds a minimal registered table with optional outgoing references.
func table(name string, refs ...ForeignKey) *TableDefinition {
	return &TableDefinition{
		Name: name,
		Columns: []ColumnDefinition{
			{Name: "id", Type: TypeInt, Primary: true, AutoIncrement: true},
		},
		ForeignKeys: refs,
	}
}

func ref(column, target string) ForeignKey {
	return ForeignKey{Column: column, RefTable: target, RefColumn: "id"}
}

func TestRegistryRegister(t *testing.T) {
	t.Run("duplicate table name fails regardless of order", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(table("author")))

		err := reg.Register(table("author"))
		assert.ErrorIs(t, err, ErrDuplicateTable)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("lookup finds registered tables", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(table("author")))

		got, ok := reg.Lookup("author")
		require.True(t, ok)
		assert.Equal(t, "author", got.Name)

		_, ok = reg.Lookup("book")
		assert.False(t, ok)
	})

	t.Run("tables come back in registration order", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(table("book", ref("author_id", "author"))))
		require.NoError(t, reg.Register(table("author")))

		tables := reg.Tables()
		require.Len(t, tables, 2)
		assert.Equal(t, "book", tables[0].Name)
		assert.Equal(t, "author", tables[1].Name)
	})
}

func TestRegistryCircularReferences(t *testing.T) {
	t.Run("direct two-table cycle fails at second registration", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(table("author", ref("favorite_book_id", "book"))))

		err := reg.Register(table("book", ref("author_id", "author")))
		assert.ErrorIs(t, err, ErrCircularForeignKey)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("forward reference to an unregistered table is allowed", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(table("book", ref("author_id", "author"))))
		require.NoError(t, reg.Register(table("author")))
	})

	// The registration check is pairwise only: longer cycles register fine
	// and surface when the compiler orders the graph.
	t.Run("three-table cycle registers without error", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(table("a", ref("b_id", "b"))))
		require.NoError(t, reg.Register(table("b", ref("c_id", "c"))))
		require.NoError(t, reg.Register(table("c", ref("a_id", "a"))))
		assert.Equal(t, 3, reg.Len())
	})
}

func TestRegistryRegisterTypes(t *testing.T) {
	t.Run("resolves and registers, skipping non-tables", func(t *testing.T) {
		author := meta.NewType("Author").Table("").
			Field(meta.NewField("ID", meta.NativeInt).ID("")).
			Build()
		helper := meta.NewType("Helper").Build()

		reg := NewRegistry()
		require.NoError(t, reg.RegisterTypes(author, helper))
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("resolution failure registers nothing partial", func(t *testing.T) {
		broken := meta.NewType("Broken").Table("").
			Field(meta.NewField("A", meta.NativeInt).ID("")).
			Field(meta.NewField("B", meta.NativeInt).ID("")).
			Build()

		reg := NewRegistry()
		err := reg.RegisterTypes(broken)
		assert.ErrorIs(t, err, ErrMultiplePrimaryKeys)
		assert.Equal(t, 0, reg.Len())
	})
}
