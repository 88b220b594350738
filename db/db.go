package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"           // Import postgres driver
	_ "github.com/mattn/go-sqlite3" // Import sqlite driver
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

var ErrUnsupportedDSN = errors.New("unsupported database URL scheme")

// ParseDSN maps a DATABASE_URL onto a driver and the data source name that driver expects.
// postgres:// and postgresql:// go to lib/pq unchanged; sqlite://<path>, file: URIs and
// :memory: go to go-sqlite3 with foreign keys switched on.
func ParseDSN(databaseURL string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DialectPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DialectSQLite, withForeignKeys("file:" + strings.TrimPrefix(databaseURL, "sqlite://")), nil
	case strings.HasPrefix(databaseURL, "file:"), databaseURL == ":memory:":
		return DialectSQLite, withForeignKeys(databaseURL), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, databaseURL)
	}
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func Connect(databaseURL string, timeout time.Duration) (*sql.DB, Dialect, error) {
	dialect, dsn, err := ParseDSN(databaseURL)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create database handle: %w", err)
	}

	switch dialect {
	case DialectSQLite:
		// A single connection keeps :memory: databases alive and serialises writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, "", errors.Join(fmt.Errorf("failed to ping database within %v: %w", timeout, err), closeErr)
		}
		return nil, "", fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, dialect, nil
}
