package brackets

import (
	"sort"

	"github.com/Dosada05/swiss-tournament/models"
)

// ComputeStandings aggregates wins and matches played for every player, including
// players without a single recorded match. Rows are ordered by wins descending and,
// among equal wins, by player id ascending. Matches naming unknown players are ignored.
func ComputeStandings(players []*models.Player, matches []*models.Match) []models.StandingRow {
	rows := make([]models.StandingRow, 0, len(players))
	index := make(map[int]int, len(players))
	for _, p := range players {
		if p == nil {
			continue
		}
		index[p.ID] = len(rows)
		rows = append(rows, models.StandingRow{ID: p.ID, Name: p.Name})
	}

	for _, m := range matches {
		if m == nil {
			continue
		}
		if i, ok := index[m.WinnerID]; ok {
			rows[i].Wins++
			rows[i].Matches++
		}
		if m.LoserID == m.WinnerID {
			continue
		}
		if i, ok := index[m.LoserID]; ok {
			rows[i].Matches++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}
