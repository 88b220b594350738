package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"golang.org/x/sync/errgroup"
)

// StandingsPublisher receives a notification after every change to players or matches.
type StandingsPublisher interface {
	BroadcastToRoom(roomID string, message interface{})
}

type TournamentService interface {
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error)
	PlayerStandings(ctx context.Context) ([]models.StandingRow, error)
	SwissPairings(ctx context.Context) ([]models.Pairing, error)
	DeleteMatches(ctx context.Context) error
	DeletePlayers(ctx context.Context) error
}

type tournamentService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	generator  brackets.PairingGenerator
	publisher  StandingsPublisher
	logger     *slog.Logger
}

// NewTournamentService wires the engine to its record store. publisher may be nil.
func NewTournamentService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	generator brackets.PairingGenerator,
	publisher StandingsPublisher,
	logger *slog.Logger,
) TournamentService {
	if generator == nil {
		generator = brackets.NewSwissGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		generator:  generator,
		publisher:  publisher,
		logger:     logger,
	}
}

// RegisterPlayer stores a new player. Names are taken as given and need not be unique.
func (s *tournamentService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	player := &models.Player{Name: name}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, storeError("register player", err)
	}

	s.logger.InfoContext(ctx, "player registered", slog.Int("player_id", player.ID), slog.String("name", player.Name))
	s.publishStandings(ctx, brackets.MessageStandingsUpdated)
	return player, nil
}

func (s *tournamentService) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.playerRepo.Count(ctx)
	if err != nil {
		return 0, storeError("count players", err)
	}
	return count, nil
}

// ReportMatch records a result between two registered, distinct players.
// Rematches are allowed.
func (s *tournamentService) ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error) {
	if winnerID == loserID {
		return nil, fmt.Errorf("%w (player %d)", ErrSelfMatch, winnerID)
	}
	for _, id := range []int{winnerID, loserID} {
		if err := s.ensurePlayerExists(ctx, id); err != nil {
			return nil, err
		}
	}

	match := &models.Match{WinnerID: winnerID, LoserID: loserID}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchPlayerInvalid):
			return nil, fmt.Errorf("%w: winner %d, loser %d", ErrInvalidReference, winnerID, loserID)
		case errors.Is(err, repositories.ErrMatchSelfPlay):
			return nil, fmt.Errorf("%w (player %d)", ErrSelfMatch, winnerID)
		}
		return nil, storeError("report match", err)
	}

	s.logger.InfoContext(ctx, "match reported",
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", winnerID),
		slog.Int("loser_id", loserID),
	)
	s.publishStandings(ctx, brackets.MessageStandingsUpdated)
	return match, nil
}

func (s *tournamentService) ensurePlayerExists(ctx context.Context, id int) error {
	if _, err := s.playerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return fmt.Errorf("%w: player %d", ErrInvalidReference, id)
		}
		return storeError("check player", err)
	}
	return nil
}

// PlayerStandings loads players and matches in parallel and ranks every player
// by wins, ties broken by id ascending.
func (s *tournamentService) PlayerStandings(ctx context.Context) ([]models.StandingRow, error) {
	var (
		players []*models.Player
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx)
		if err != nil {
			return storeError("list players", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx)
		if err != nil {
			return storeError("list matches", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return brackets.ComputeStandings(players, matches), nil
}

// SwissPairings pairs adjacent standings rows for the next round. It fails with
// ErrPreconditionViolated when fewer than two or an odd number of players are registered.
func (s *tournamentService) SwissPairings(ctx context.Context) ([]models.Pairing, error) {
	standings, err := s.PlayerStandings(ctx)
	if err != nil {
		return nil, err
	}

	pairings, err := s.generator.GeneratePairings(ctx, standings)
	if err != nil {
		if errors.Is(err, brackets.ErrOddPlayerCount) || errors.Is(err, brackets.ErrNotEnoughPlayers) {
			return nil, fmt.Errorf("%w: %w", ErrPreconditionViolated, err)
		}
		return nil, err
	}

	s.logger.DebugContext(ctx, "pairings generated",
		slog.String("generator", s.generator.GetName()),
		slog.Int("pairings", len(pairings)),
	)
	return pairings, nil
}

func (s *tournamentService) DeleteMatches(ctx context.Context) error {
	if err := s.matchRepo.DeleteAll(ctx); err != nil {
		return storeError("delete matches", err)
	}
	s.logger.InfoContext(ctx, "all matches deleted")
	s.publishStandings(ctx, brackets.MessageStandingsReset)
	return nil
}

// DeletePlayers removes every player together with the matches they played.
func (s *tournamentService) DeletePlayers(ctx context.Context) error {
	if err := s.playerRepo.DeleteAll(ctx); err != nil {
		return storeError("delete players", err)
	}
	s.logger.InfoContext(ctx, "all players deleted")
	s.publishStandings(ctx, brackets.MessageStandingsReset)
	return nil
}

func (s *tournamentService) publishStandings(ctx context.Context, messageType string) {
	if s.publisher == nil {
		return
	}
	standings, err := s.PlayerStandings(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load standings for broadcast", slog.Any("error", err))
		return
	}
	s.publisher.BroadcastToRoom(brackets.StandingsRoom, brackets.WebSocketMessage{
		Type:    messageType,
		Payload: standings,
		RoomID:  brackets.StandingsRoom,
	})
}
