package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/services"
)

type ResultHandler struct {
	resultService services.ResultService
	dopingService services.DopingService
}

func NewResultHandler(resultService services.ResultService, dopingService services.DopingService) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		dopingService: dopingService,
	}
}

// Submit accepts a game result. The payload shape depends on the game:
// touwspringen takes a jump count, stoelendans the finish order, rebus and
// wiskunde the ten answers plus total time. Tournament games are rejected
// here, their results come in per match.
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	game, ok := models.ParseGame(chi.URLParam(r, "game"))
	if !ok {
		notFoundResponse(w, r, "unknown game")
		return
	}

	switch game {
	case models.GameTouwspringen:
		h.submitJumps(w, r)
	case models.GameStoelendans:
		h.submitOrdering(w, r)
	case models.GameRebus, models.GameWiskunde:
		h.submitQuiz(w, r, game)
	default:
		mapServiceErrorToHTTP(w, r, services.ErrTournamentGameDirect)
	}
}

func (h *ResultHandler) submitJumps(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlayerID  int  `json:"player_id"`
		Jumps     int  `json:"jumps"`
		Doping    bool `json:"doping"`
		Overwrite bool `json:"overwrite"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err := h.resultService.SubmitJumps(r.Context(), services.SubmitJumpsInput{
		PlayerID:  body.PlayerID,
		Jumps:     body.Jumps,
		Doping:    body.Doping,
		Overwrite: body.Overwrite,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil)
}

func (h *ResultHandler) submitOrdering(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Ordering      []int `json:"ordering"`
		DopingPlayers []int `json:"doping_players"`
		Overwrite     bool  `json:"overwrite"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err := h.resultService.SubmitOrdering(r.Context(), services.SubmitOrderingInput{
		Ordering:      body.Ordering,
		DopingPlayers: body.DopingPlayers,
		Overwrite:     body.Overwrite,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil)
}

func (h *ResultHandler) submitQuiz(w http.ResponseWriter, r *http.Request, game models.Game) {
	var body struct {
		PlayerID    int      `json:"player_id"`
		Answers     []string `json:"answers"`
		TimeSeconds float64  `json:"time_seconds_total"`
		Doping      bool     `json:"doping"`
		Overwrite   bool     `json:"overwrite"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.resultService.SubmitQuiz(r.Context(), game, services.SubmitQuizInput{
		PlayerID:    body.PlayerID,
		Answers:     body.Answers,
		TimeSeconds: body.TimeSeconds,
		Doping:      body.Doping,
		Overwrite:   body.Overwrite,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "outcome": outcome}, nil)
}

func (h *ResultHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultService.GetAll(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "results": results}, nil)
}

// CheckExistingScore tells the submission form whether it should ask for an
// overwrite confirmation before posting.
func (h *ResultHandler) CheckExistingScore(w http.ResponseWriter, r *http.Request) {
	game, ok := models.ParseGame(chi.URLParam(r, "game"))
	if !ok {
		notFoundResponse(w, r, "unknown game")
		return
	}
	playerID, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	exists, err := h.resultService.HasExistingScore(r.Context(), game, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "has_score": exists}, nil)
}

func (h *ResultHandler) DopingUsage(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.dopingService.Usage(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "doping": ledger}, nil)
}

// CheckDoping reports whether the player may still spend their boost on the
// game. A conflict is not an HTTP error, the form shows it inline.
func (h *ResultHandler) CheckDoping(w http.ResponseWriter, r *http.Request) {
	game, ok := models.ParseGame(chi.URLParam(r, "game"))
	if !ok {
		notFoundResponse(w, r, "unknown game")
		return
	}
	playerID, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.dopingService.CheckEligibility(r.Context(), playerID, game); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "eligible": true}, nil)
}
