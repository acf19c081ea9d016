package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/services"
)

var knownJerseys = map[models.Jersey]bool{
	models.JerseyGeleTrui:      true,
	models.JerseyGroeneTrui:    true,
	models.JerseyBolletjesTrui: true,
	models.JerseyWitteTrui:     true,
}

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func (h *RankingHandler) Get(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.rankingService.Rankings(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "rankings": rankings}, nil)
}

// CheckWinners returns the jerseys that are decided and not yet dismissed,
// so the scoreboard can show the winner popups.
func (h *RankingHandler) CheckWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := h.rankingService.CheckWinners(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "winners": winners}, nil)
}

func (h *RankingHandler) DismissWinner(w http.ResponseWriter, r *http.Request) {
	jersey := models.Jersey(chi.URLParam(r, "jersey"))
	if !knownJerseys[jersey] {
		notFoundResponse(w, r, "unknown jersey")
		return
	}

	h.rankingService.DismissWinner(jersey)
	writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil)
}
