// Package gateway executes statements against a live database. The engine
// never inspects dialect-specific error codes: any execution failure is
// reported uniformly as a failed statement.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// The emitted DDL grammar targets MySQL.
	_ "github.com/go-sql-driver/mysql"
)

// ErrNoTransaction is returned when Commit or Rollback is called without an
// open transaction.
var ErrNoTransaction = errors.New("no open transaction")

// Gateway is the contract the engine needs from a database connection:
// statement execution with positional parameters, plus transaction control.
type Gateway interface {
	// Exec runs a statement that returns no rows
	Exec(ctx context.Context, stmt string, args ...any) error
	// Query runs a statement and returns its row cursor
	Query(ctx context.Context, stmt string, args ...any) (*sql.Rows, error)
	// Begin opens a transaction; subsequent statements run inside it
	Begin(ctx context.Context) error
	// Commit commits the open transaction
	Commit() error
	// Rollback aborts the open transaction
	Rollback() error
}

// SQLGateway implements Gateway over database/sql.
type SQLGateway struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSQLGateway wraps an existing database handle
func NewSQLGateway(db *sql.DB) *SQLGateway {
	return &SQLGateway{db: db}
}

// Open connects to the database at the given DSN
func Open(dsn string) (*SQLGateway, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLGateway{db: db}, nil
}

// DB returns the underlying database handle
func (g *SQLGateway) DB() *sql.DB {
	return g.db
}

// Close closes the underlying database handle
func (g *SQLGateway) Close() error {
	return g.db.Close()
}

// Exec runs a statement inside the open transaction, if any
func (g *SQLGateway) Exec(ctx context.Context, stmt string, args ...any) error {
	var err error
	if g.tx != nil {
		_, err = g.tx.ExecContext(ctx, stmt, args...)
	} else {
		_, err = g.db.ExecContext(ctx, stmt, args...)
	}
	if err != nil {
		return fmt.Errorf("statement failed: %w", err)
	}
	return nil
}

// Query runs a statement and returns its rows
func (g *SQLGateway) Query(ctx context.Context, stmt string, args ...any) (*sql.Rows, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if g.tx != nil {
		rows, err = g.tx.QueryContext(ctx, stmt, args...)
	} else {
		rows, err = g.db.QueryContext(ctx, stmt, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("statement failed: %w", err)
	}
	return rows, nil
}

// Begin opens a transaction
func (g *SQLGateway) Begin(ctx context.Context) error {
	if g.tx != nil {
		return errors.New("transaction already open")
	}
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	g.tx = tx
	return nil
}

// Commit commits the open transaction
func (g *SQLGateway) Commit() error {
	if g.tx == nil {
		return ErrNoTransaction
	}
	err := g.tx.Commit()
	g.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the open transaction
func (g *SQLGateway) Rollback() error {
	if g.tx == nil {
		return ErrNoTransaction
	}
	err := g.tx.Rollback()
	g.tx = nil
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
