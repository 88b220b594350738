package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrNotEnoughPlayers = errors.New("at least two players are required for pairings")
	ErrOddPlayerCount   = errors.New("pairings require an even number of players")
)

type SwissGenerator struct{}

func NewSwissGenerator() PairingGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

// GeneratePairings walks the standings two rows at a time: row 0 meets row 1,
// row 2 meets row 3 and so on. There is no bye, so an odd field is rejected.
func (g *SwissGenerator) GeneratePairings(ctx context.Context, standings []models.StandingRow) ([]models.Pairing, error) {
	if len(standings) < 2 {
		return nil, fmt.Errorf("SwissGenerator: %w (found %d)", ErrNotEnoughPlayers, len(standings))
	}
	if len(standings)%2 != 0 {
		return nil, fmt.Errorf("SwissGenerator: %w (found %d)", ErrOddPlayerCount, len(standings))
	}

	pairings := make([]models.Pairing, 0, len(standings)/2)
	for i := 0; i < len(standings); i += 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		first, second := standings[i], standings[i+1]
		pairings = append(pairings, models.Pairing{
			Player1ID:   first.ID,
			Player1Name: first.Name,
			Player2ID:   second.ID,
			Player2Name: second.Name,
		})
	}
	return pairings, nil
}
