package brackets

import (
	"context"

	"github.com/Dosada05/swiss-tournament/models"
)

// PairingGenerator turns ranked standings into the pairings of the next round.
type PairingGenerator interface {
	GeneratePairings(ctx context.Context, standings []models.StandingRow) ([]models.Pairing, error)

	GetName() string
}
