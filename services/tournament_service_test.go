package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (p *recordingPublisher) BroadcastToRoom(_ string, message interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message.(brackets.WebSocketMessage))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (TournamentService, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	svc := NewTournamentService(store.playerRepo(), store.matchRepo(), nil, nil, discardLogger())
	return svc, store
}

func register(t *testing.T, svc TournamentService, names ...string) []*models.Player {
	t.Helper()
	out := make([]*models.Player, 0, len(names))
	for _, name := range names {
		p, err := svc.RegisterPlayer(context.Background(), name)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestCountPlayers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	count, err := svc.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	register(t, svc, "Chandra Nalaar", "Chandra Nalaar")
	count, err = svc.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.DeletePlayers(ctx))
	count, err = svc.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStandingsBeforeMatches(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "Melpomene Murray", "Randy Schwartz", "Lee", "Kim")

	standings, err := svc.PlayerStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, standings, 4)
	for _, row := range standings {
		assert.Zero(t, row.Wins)
		assert.Zero(t, row.Matches)
	}
}

func TestReportMatchesUpdatesStandings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ps := register(t, svc, "Bruno Walton", "Boots O'Neal", "Cathy Burton", "Diane Grant")

	_, err := svc.ReportMatch(ctx, ps[0].ID, ps[1].ID)
	require.NoError(t, err)
	_, err = svc.ReportMatch(ctx, ps[2].ID, ps[3].ID)
	require.NoError(t, err)

	standings, err := svc.PlayerStandings(ctx)
	require.NoError(t, err)
	for _, row := range standings {
		assert.Equal(t, 1, row.Matches)
		switch row.ID {
		case ps[0].ID, ps[2].ID:
			assert.Equal(t, 1, row.Wins)
		default:
			assert.Zero(t, row.Wins)
		}
	}
	for i := 1; i < len(standings); i++ {
		assert.GreaterOrEqual(t, standings[i-1].Wins, standings[i].Wins)
	}

	require.NoError(t, svc.DeleteMatches(ctx))
	standings, err = svc.PlayerStandings(ctx)
	require.NoError(t, err)
	assert.Len(t, standings, 4, "players survive match deletion")
	for _, row := range standings {
		assert.Zero(t, row.Wins)
		assert.Zero(t, row.Matches)
	}
}

func TestSwissPairingsEndToEnd(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ps := register(t, svc, "Twilight Sparkle", "Fluttershy", "Applejack", "Pinkie Pie")
	a, b, c, d := ps[0], ps[1], ps[2], ps[3]

	_, err := svc.ReportMatch(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = svc.ReportMatch(ctx, c.ID, d.ID)
	require.NoError(t, err)

	pairings, err := svc.SwissPairings(ctx)
	require.NoError(t, err)
	require.Len(t, pairings, 2)

	winners := map[int]bool{a.ID: true, c.ID: true}
	for _, p := range pairings {
		assert.Equal(t, winners[p.Player1ID], winners[p.Player2ID],
			"players with equal records meet: %+v", p)
	}
	assert.Equal(t, models.Pairing{Player1ID: a.ID, Player1Name: a.Name, Player2ID: c.ID, Player2Name: c.Name}, pairings[0])
	assert.Equal(t, models.Pairing{Player1ID: b.ID, Player1Name: b.Name, Player2ID: d.ID, Player2Name: d.Name}, pairings[1])
}

func TestSwissPairingsCoverEveryPlayerOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ps := register(t, svc, "A", "B", "C", "D", "E", "F", "G", "H")
	for i := 0; i < len(ps); i += 2 {
		_, err := svc.ReportMatch(ctx, ps[i+1].ID, ps[i].ID)
		require.NoError(t, err)
	}

	standings, err := svc.PlayerStandings(ctx)
	require.NoError(t, err)
	pairings, err := svc.SwissPairings(ctx)
	require.NoError(t, err)
	require.Len(t, pairings, len(ps)/2)

	for i, p := range pairings {
		assert.Equal(t, standings[2*i].ID, p.Player1ID)
		assert.Equal(t, standings[2*i+1].ID, p.Player2ID)
	}
}

func TestSwissPairingsPreconditions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SwissPairings(ctx)
	assert.ErrorIs(t, err, ErrPreconditionViolated)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	register(t, svc, "A", "B", "C")
	_, err = svc.SwissPairings(ctx)
	assert.ErrorIs(t, err, ErrPreconditionViolated)
	assert.ErrorIs(t, err, ErrOddPlayerCount)
}

func TestReportMatchValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ps := register(t, svc, "A", "B")

	_, err := svc.ReportMatch(ctx, ps[0].ID, ps[0].ID)
	assert.ErrorIs(t, err, ErrSelfMatch)
	assert.ErrorIs(t, err, ErrPreconditionViolated)

	_, err = svc.ReportMatch(ctx, ps[0].ID, 999)
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = svc.ReportMatch(ctx, 999, ps[1].ID)
	assert.ErrorIs(t, err, ErrInvalidReference)

	// rematches are allowed
	for i := 0; i < 2; i++ {
		_, err = svc.ReportMatch(ctx, ps[0].ID, ps[1].ID)
		require.NoError(t, err)
	}
	standings, err := svc.PlayerStandings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, standings[0].Wins)
	assert.Equal(t, 2, standings[1].Matches)
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	svc, store := newTestService(t)
	store.failErr = errors.New("connection refused")
	ctx := context.Background()

	_, err := svc.RegisterPlayer(ctx, "A")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.CountPlayers(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.PlayerStandings(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.SwissPairings(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.ReportMatch(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	assert.ErrorIs(t, svc.DeleteMatches(ctx), ErrStoreUnavailable)
	assert.ErrorIs(t, svc.DeletePlayers(ctx), ErrStoreUnavailable)
}

func TestMutationsPublishStandings(t *testing.T) {
	store := newMemoryStore()
	publisher := &recordingPublisher{}
	svc := NewTournamentService(store.playerRepo(), store.matchRepo(), nil, publisher, discardLogger())
	ctx := context.Background()

	ps := register(t, svc, "A", "B")
	_, err := svc.ReportMatch(ctx, ps[0].ID, ps[1].ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMatches(ctx))

	require.Len(t, publisher.messages, 4)
	last := publisher.messages[3]
	assert.Equal(t, brackets.MessageStandingsReset, last.Type)
	assert.Equal(t, brackets.StandingsRoom, last.RoomID)

	afterMatch := publisher.messages[2].Payload.([]models.StandingRow)
	assert.Equal(t, ps[0].ID, afterMatch[0].ID)
	assert.Equal(t, 1, afterMatch[0].Wins)
}
