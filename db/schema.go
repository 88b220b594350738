package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schemas = map[Dialect][]string{
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS players (
			id         SERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id         SERIAL PRIMARY KEY,
			winner_id  INTEGER NOT NULL,
			loser_id   INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT matches_winner_id_fkey FOREIGN KEY (winner_id) REFERENCES players (id) ON DELETE CASCADE,
			CONSTRAINT matches_loser_id_fkey FOREIGN KEY (loser_id) REFERENCES players (id) ON DELETE CASCADE,
			CONSTRAINT chk_match_distinct_players CHECK (winner_id <> loser_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_winner_id ON matches (winner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_loser_id ON matches (loser_id)`,
	},
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS players (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			winner_id  INTEGER NOT NULL REFERENCES players (id) ON DELETE CASCADE,
			loser_id   INTEGER NOT NULL REFERENCES players (id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT chk_match_distinct_players CHECK (winner_id <> loser_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_winner_id ON matches (winner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_loser_id ON matches (loser_id)`,
	},
}

// EnsureSchema creates the players and matches tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	statements, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", dialect)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return tx.Commit()
}
