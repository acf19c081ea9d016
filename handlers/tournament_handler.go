package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func (h *TournamentHandler) gameParam(w http.ResponseWriter, r *http.Request) (models.Game, bool) {
	game, ok := models.ParseGame(chi.URLParam(r, "game"))
	if !ok {
		notFoundResponse(w, r, "unknown game")
		return "", false
	}
	return game, true
}

// Generate builds a fresh bracket from the registered players, replacing any
// existing one.
func (h *TournamentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	game, ok := h.gameParam(w, r)
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GenerateBracket(r.Context(), game)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"success": true, "tournament": tournament}, nil)
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, ok := h.gameParam(w, r)
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GetTournament(r.Context(), game)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "tournament": tournament}, nil)
}

func (h *TournamentHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	game, ok := h.gameParam(w, r)
	if !ok {
		return
	}

	matches, err := h.tournamentService.ListMatches(r.Context(), game)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "matches": matches}, nil)
}

// CheckResults reports whether the knock-out games have any completed match
// yet, so the scoreboard knows which brackets to render.
func (h *TournamentHandler) CheckResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.tournamentService.HasResults(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{
		"success":              true,
		"kubb_has_results":     results[models.GameKubb],
		"petanque_has_results": results[models.GamePetanque],
	}, nil)
}

// SubmitMatch records a match outcome and returns the advanced bracket.
func (h *TournamentHandler) SubmitMatch(w http.ResponseWriter, r *http.Request) {
	game, ok := h.gameParam(w, r)
	if !ok {
		return
	}

	var input services.SubmitMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.SubmitMatchResult(r.Context(), game, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "tournament": tournament}, nil)
}
