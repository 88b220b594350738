package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type SnapshotService interface {
	Export(ctx context.Context) (*models.StandingsSnapshot, error)
	Delete(ctx context.Context, key string) error
}

const snapshotKeyPrefix = "snapshots/"

type snapshotService struct {
	tournament TournamentService
	generator  brackets.PairingGenerator
	uploader   storage.FileUploader
	name       string
	logger     *slog.Logger
	now        func() time.Time
}

// NewSnapshotService exports standings under the given tournament name. A nil uploader
// makes every export fail with ErrStorageDisabled.
func NewSnapshotService(
	tournament TournamentService,
	generator brackets.PairingGenerator,
	uploader storage.FileUploader,
	tournamentName string,
	logger *slog.Logger,
) SnapshotService {
	if generator == nil {
		generator = brackets.NewSwissGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &snapshotService{
		tournament: tournament,
		generator:  generator,
		uploader:   uploader,
		name:       tournamentName,
		logger:     logger,
		now:        time.Now,
	}
}

// Export uploads the current standings as JSON. Pairings are built from the same
// standings rows and attached only when the field can be paired; an odd field still
// produces a snapshot.
func (s *snapshotService) Export(ctx context.Context) (*models.StandingsSnapshot, error) {
	if s.uploader == nil {
		return nil, ErrStorageDisabled
	}

	standings, err := s.tournament.PlayerStandings(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &models.StandingsSnapshot{
		ID:         uuid.NewString(),
		Tournament: s.name,
		TakenAt:    s.now().UTC(),
		Standings:  standings,
	}

	pairings, err := s.generator.GeneratePairings(ctx, standings)
	switch {
	case err == nil:
		snapshot.Pairings = pairings
	case errors.Is(err, ErrOddPlayerCount), errors.Is(err, ErrNotEnoughPlayers):
		s.logger.DebugContext(ctx, "snapshot taken without pairings", slog.Any("reason", err))
	default:
		return nil, err
	}

	snapshot.Key = snapshotKey(s.name, snapshot.TakenAt, snapshot.ID)

	body, err := json.MarshalIndent(snapshot, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	result, err := s.uploader.Upload(ctx, snapshot.Key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}
	snapshot.URL = result.Location

	s.logger.InfoContext(ctx, "standings snapshot exported",
		slog.String("snapshot_id", snapshot.ID),
		slog.String("key", snapshot.Key),
		slog.Int("players", len(standings)),
	)
	return snapshot, nil
}

// Delete removes a previously exported snapshot from the bucket.
func (s *snapshotService) Delete(ctx context.Context, key string) error {
	if s.uploader == nil {
		return ErrStorageDisabled
	}
	if !validSnapshotKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidSnapshotKey, key)
	}

	if err := s.uploader.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "standings snapshot deleted", slog.String("key", key))
	return nil
}

func validSnapshotKey(key string) bool {
	return strings.HasPrefix(key, snapshotKeyPrefix) &&
		strings.HasSuffix(key, ".json") &&
		!strings.Contains(key, "..")
}

func snapshotKey(tournamentName string, takenAt time.Time, id string) string {
	prefix := slug.Make(tournamentName)
	if prefix == "" {
		prefix = "tournament"
	}
	return fmt.Sprintf("%s%s/%s-%s.json", snapshotKeyPrefix, prefix, takenAt.UTC().Format("20060102T150405Z"), id)
}
