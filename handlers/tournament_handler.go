package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// RegisterPlayer godoc
// @Summary Register a player
// @Tags players
// @Accept json
// @Produce json
// @Param body body object true "{\"name\": \"...\"}"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /players [post]
func (h *TournamentHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name *string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Name == nil {
		badRequestResponse(w, r, errors.New("name is required"))
		return
	}

	player, err := h.tournamentService.RegisterPlayer(r.Context(), *input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) CountPlayers(w http.ResponseWriter, r *http.Request) {
	count, err := h.tournamentService.CountPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"count": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) DeletePlayers(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.DeletePlayers(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReportMatch godoc
// @Summary Record a match result
// @Tags matches
// @Accept json
// @Produce json
// @Param body body object true "{\"winner_id\": 1, \"loser_id\": 2}"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Unknown player or self match"
// @Security BearerAuth
// @Router /matches [post]
func (h *TournamentHandler) ReportMatch(w http.ResponseWriter, r *http.Request) {
	var input struct {
		WinnerID *int `json:"winner_id"`
		LoserID  *int `json:"loser_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.WinnerID == nil || input.LoserID == nil {
		badRequestResponse(w, r, errors.New("winner_id and loser_id are required"))
		return
	}

	match, err := h.tournamentService.ReportMatch(r.Context(), *input.WinnerID, *input.LoserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) DeleteMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.DeleteMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Standings godoc
// @Summary Current standings ordered by wins
// @Tags standings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /standings [get]
func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.tournamentService.PlayerStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Pairings godoc
// @Summary Next round pairings
// @Tags standings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Odd number of players or fewer than two"
// @Router /pairings [get]
func (h *TournamentHandler) Pairings(w http.ResponseWriter, r *http.Request) {
	pairings, err := h.tournamentService.SwissPairings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairings": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
