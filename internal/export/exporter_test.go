package export

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmap/relmap/internal/compile"
	"github.com/relmap/relmap/internal/gateway"
)

// librarySchema is a small two-table fixture with one trigger and one seed set.
func librarySchema() *compile.Schema {
	return &compile.Schema{
		Tables: []compile.TableFragment{
			{
				Table:      "author",
				CreateBody: "(\n  `id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY,\n  `name` VARCHAR(255) NOT NULL\n)",
				Triggers: []compile.TriggerFragment{
					{
						Name:   "author_audit",
						Table:  "author",
						Timing: "AFTER",
						Event:  "INSERT",
						Body:   "INSERT INTO audit_log (entry) VALUES (NEW.id)",
					},
				},
				Inserts: []compile.InsertFragment{
					{
						Table:   "author",
						Columns: []string{"name"},
						Rows:    []string{"('anonymous')", "('unknown')"},
					},
				},
			},
			{
				Table:      "book",
				CreateBody: "(\n  `id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY,\n  `author_id` INT NOT NULL,\n  FOREIGN KEY (`author_id`) REFERENCES `author` (`id`)\n)",
				References: []string{"author"},
			},
		},
		HasTriggers: true,
		HasRecords:  true,
	}
}

func TestRenderTables(t *testing.T) {
	e := NewExporter(librarySchema())

	t.Run("strict", func(t *testing.T) {
		out := e.Render(KindTables, ModeStrict)
		assert.Contains(t, out, "CREATE TABLE `author` (")
		assert.Contains(t, out, "CREATE TABLE `book` (")
		assert.NotContains(t, out, "IF NOT EXISTS")
		assert.NotContains(t, out, "CREATE TRIGGER")
		assert.NotContains(t, out, "INSERT")
	})

	t.Run("tolerant", func(t *testing.T) {
		out := e.Render(KindTables, ModeTolerant)
		assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS `author` (")
		assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS `book` (")
	})
}

func TestRenderTriggers(t *testing.T) {
	e := NewExporter(librarySchema())

	t.Run("strict", func(t *testing.T) {
		out := e.Render(KindTriggers, ModeStrict)
		assert.Contains(t, out,
			"CREATE TRIGGER `author_audit` AFTER INSERT ON `author` FOR EACH ROW INSERT INTO audit_log (entry) VALUES (NEW.id);")
		assert.NotContains(t, out, "DROP TRIGGER")
		assert.NotContains(t, out, "CREATE TABLE")
	})

	t.Run("tolerant drops before creating", func(t *testing.T) {
		out := e.Render(KindTriggers, ModeTolerant)
		dropAt := regexp.MustCompile("DROP TRIGGER IF EXISTS `author_audit`;").FindStringIndex(out)
		createAt := regexp.MustCompile("CREATE TRIGGER `author_audit`").FindStringIndex(out)
		require.NotNil(t, dropAt)
		require.NotNil(t, createAt)
		assert.Less(t, dropAt[0], createAt[0])
	})
}

func TestRenderRecords(t *testing.T) {
	e := NewExporter(librarySchema())

	t.Run("strict", func(t *testing.T) {
		out := e.Render(KindRecords, ModeStrict)
		assert.Contains(t, out, "INSERT INTO `author` (`name`) VALUES\n  ('anonymous'),\n  ('unknown');")
		assert.NotContains(t, out, "IGNORE")
	})

	t.Run("tolerant", func(t *testing.T) {
		out := e.Render(KindRecords, ModeTolerant)
		assert.Contains(t, out, "INSERT IGNORE INTO `author` (`name`) VALUES")
	})
}

func TestRenderAllOrder(t *testing.T) {
	out := NewExporter(librarySchema()).Render(KindAll, ModeStrict)

	tableAt := regexp.MustCompile("CREATE TABLE `book`").FindStringIndex(out)
	triggerAt := regexp.MustCompile("CREATE TRIGGER `author_audit`").FindStringIndex(out)
	insertAt := regexp.MustCompile("INSERT INTO `author`").FindStringIndex(out)
	require.NotNil(t, tableAt)
	require.NotNil(t, triggerAt)
	require.NotNil(t, insertAt)

	// tables first, then triggers, then records
	assert.Less(t, tableAt[0], triggerAt[0])
	assert.Less(t, triggerAt[0], insertAt[0])
}

func TestApply(t *testing.T) {
	t.Run("applies everything in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `author`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `book`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TRIGGER `author_audit`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `author`")).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		created, err := NewExporter(librarySchema()).
			Apply(context.Background(), gateway.NewSQLGateway(db), ModeStrict)
		require.NoError(t, err)
		assert.Equal(t, 2, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tolerant mode drops triggers and ignores duplicates", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `author`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `book`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DROP TRIGGER IF EXISTS `author_audit`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TRIGGER `author_audit`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT IGNORE INTO `author`")).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		created, err := NewExporter(librarySchema()).
			Apply(context.Background(), gateway.NewSQLGateway(db), ModeTolerant)
		require.NoError(t, err)
		assert.Equal(t, 2, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first failure rolls back and reports nothing created", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		boom := errors.New("table already exists")
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `author`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `book`")).
			WillReturnError(boom)
		mock.ExpectRollback()

		created, err := NewExporter(librarySchema()).
			Apply(context.Background(), gateway.NewSQLGateway(db), ModeStrict)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "table book")
		assert.Equal(t, 0, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("trigger failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `author`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE `book`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TRIGGER `author_audit`")).
			WillReturnError(errors.New("syntax error"))
		mock.ExpectRollback()

		created, err := NewExporter(librarySchema()).
			Apply(context.Background(), gateway.NewSQLGateway(db), ModeStrict)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "trigger author_audit")
		assert.Equal(t, 0, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure surfaces without rollback", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		_, err = NewExporter(librarySchema()).
			Apply(context.Background(), gateway.NewSQLGateway(db), ModeStrict)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
