package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrMatchPlayerInvalid = errors.New("match references an unknown player")
	ErrMatchSelfPlay      = errors.New("match winner and loser must differ")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	List(ctx context.Context) ([]*models.Match, error)
	DeleteAll(ctx context.Context) error
}

type sqlMatchRepository struct {
	db SQLExecutor
}

func NewMatchRepository(db SQLExecutor) MatchRepository {
	return &sqlMatchRepository{db: db}
}

func (r *sqlMatchRepository) Create(ctx context.Context, match *models.Match) error {
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO matches (winner_id, loser_id, created_at) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, match.WinnerID, match.LoserID, match.CreatedAt).Scan(&match.ID)
	if err != nil {
		switch classifyConstraintError(err) {
		case constraintForeignKey:
			return ErrMatchPlayerInvalid
		case constraintCheck:
			return ErrMatchSelfPlay
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *sqlMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, winner_id, loser_id, created_at FROM matches ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.WinnerID, &m.LoserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *sqlMatchRepository) DeleteAll(ctx context.Context) error {
	return deleteAll(ctx, r.db, "matches")
}
