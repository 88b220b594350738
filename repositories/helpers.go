package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// SQLExecutor is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintForeignKey
	constraintCheck
)

// classifyConstraintError recognises constraint violations from both supported drivers.
func classifyConstraintError(err error) constraintKind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return constraintForeignKey
		case "23514": // check_violation
			return constraintCheck
		}
		return constraintNone
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return constraintForeignKey
		case sqlite3.ErrConstraintCheck:
			return constraintCheck
		}
	}
	return constraintNone
}

func deleteAll(ctx context.Context, exec SQLExecutor, table string) error {
	if _, err := exec.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to delete %s: %w", table, err)
	}
	return nil
}
