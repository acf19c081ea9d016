package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robinhio12/rockbrakel/models"
	"github.com/robinhio12/rockbrakel/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) SetAnswerKey(w http.ResponseWriter, r *http.Request) {
	game, ok := models.ParseGame(chi.URLParam(r, "game"))
	if !ok {
		notFoundResponse(w, r, "unknown game")
		return
	}

	var body struct {
		Answers []string `json:"answers"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.adminService.SetAnswerKey(r.Context(), game, body.Answers); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil)
}

func (h *AdminHandler) GetAnswerKey(w http.ResponseWriter, r *http.Request) {
	game, ok := models.ParseGame(chi.URLParam(r, "game"))
	if !ok {
		notFoundResponse(w, r, "unknown game")
		return
	}

	key, err := h.adminService.GetAnswerKey(r.Context(), game)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "answers": key}, nil)
}

// ClearResults wipes every submitted game result. Players, tournaments and
// answer keys stay in place.
func (h *AdminHandler) ClearResults(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.ClearResults(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil)
}
