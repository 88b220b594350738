package models

import "time"

// StandingRow is derived from the match log and is never persisted.
type StandingRow struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Wins    int    `json:"wins"`
	Matches int    `json:"matches"`
}

// Pairing holds two adjacent standings rows scheduled to meet in the next round.
type Pairing struct {
	Player1ID   int    `json:"player1_id"`
	Player1Name string `json:"player1_name"`
	Player2ID   int    `json:"player2_id"`
	Player2Name string `json:"player2_name"`
}

type StandingsSnapshot struct {
	ID         string        `json:"id"`
	Tournament string        `json:"tournament"`
	TakenAt    time.Time     `json:"taken_at"`
	Standings  []StandingRow `json:"standings"`
	Pairings   []Pairing     `json:"pairings,omitempty"`
	Key        string        `json:"key,omitempty"`
	URL        string        `json:"url,omitempty"`
}
