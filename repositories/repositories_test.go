package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, dialect, err := db.Connect(":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.EnsureSchema(context.Background(), conn, dialect))
	return conn
}

func createPlayers(t *testing.T, repo PlayerRepository, names ...string) []*models.Player {
	t.Helper()
	players := make([]*models.Player, 0, len(names))
	for _, name := range names {
		p := &models.Player{Name: name}
		require.NoError(t, repo.Create(context.Background(), p))
		players = append(players, p)
	}
	return players
}

func TestPlayerRepositoryCreateAssignsIDs(t *testing.T) {
	conn := newTestDB(t)
	repo := NewPlayerRepository(conn)
	ctx := context.Background()

	players := createPlayers(t, repo, "Bruno Walton", "Boots O'Neal", "Bruno Walton")
	assert.NotZero(t, players[0].ID)
	assert.NotEqual(t, players[0].ID, players[1].ID)
	assert.NotEqual(t, players[0].ID, players[2].ID, "duplicate names get distinct ids")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := repo.GetByID(ctx, players[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Boots O'Neal", got.Name)
	assert.False(t, got.CreatedAt.IsZero())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, players[0].ID, list[0].ID)
}

func TestPlayerRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewPlayerRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestMatchRepositoryCreateAndList(t *testing.T) {
	conn := newTestDB(t)
	players := createPlayers(t, NewPlayerRepository(conn), "A", "B")
	repo := NewMatchRepository(conn)
	ctx := context.Background()

	m := &models.Match{WinnerID: players[0].ID, LoserID: players[1].ID}
	require.NoError(t, repo.Create(ctx, m))
	assert.NotZero(t, m.ID)

	matches, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, players[0].ID, matches[0].WinnerID)
	assert.Equal(t, players[1].ID, matches[0].LoserID)
}

func TestMatchRepositoryConstraintErrors(t *testing.T) {
	conn := newTestDB(t)
	players := createPlayers(t, NewPlayerRepository(conn), "A")
	repo := NewMatchRepository(conn)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Match{WinnerID: players[0].ID, LoserID: players[0].ID + 100})
	assert.ErrorIs(t, err, ErrMatchPlayerInvalid)

	err = repo.Create(ctx, &models.Match{WinnerID: players[0].ID, LoserID: players[0].ID})
	assert.ErrorIs(t, err, ErrMatchSelfPlay)
}

func TestDeleteAllCascades(t *testing.T) {
	conn := newTestDB(t)
	playerRepo := NewPlayerRepository(conn)
	matchRepo := NewMatchRepository(conn)
	ctx := context.Background()

	players := createPlayers(t, playerRepo, "A", "B")
	require.NoError(t, matchRepo.Create(ctx, &models.Match{WinnerID: players[0].ID, LoserID: players[1].ID}))

	require.NoError(t, matchRepo.DeleteAll(ctx))
	matches, err := matchRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)

	count, err := playerRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "clearing matches keeps players")

	require.NoError(t, matchRepo.Create(ctx, &models.Match{WinnerID: players[1].ID, LoserID: players[0].ID}))
	require.NoError(t, playerRepo.DeleteAll(ctx))

	count, err = playerRepo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	matches, err = matchRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
