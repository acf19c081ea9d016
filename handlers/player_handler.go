package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/robinhio12/rockbrakel/services"
)

const maxPictureSize = 10 << 20 // 10MB

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// Register creates a player. The request is multipart form data so a picture
// can ride along; plain JSON without a picture is accepted too.
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	input, cleanup, err := h.parseRegisterRequest(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer cleanup()

	player, err := h.playerService.Register(r.Context(), *input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"success": true, "player": player}, nil)
}

func (h *PlayerHandler) parseRegisterRequest(w http.ResponseWriter, r *http.Request) (*services.RegisterPlayerInput, func(), error) {
	noop := func() {}
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxPictureSize); err != nil {
			return nil, noop, errors.New("could not parse multipart form")
		}
		number, err := strconv.Atoi(r.FormValue("number"))
		if err != nil {
			return nil, noop, errors.New("number must be an integer")
		}
		input := &services.RegisterPlayerInput{
			Name:   r.FormValue("name"),
			Number: number,
		}
		file, header, err := r.FormFile("picture")
		if err == nil {
			input.Picture = file
			input.PictureContentType = header.Header.Get("Content-Type")
			return input, func() { file.Close() }, nil
		}
		return input, noop, nil
	}

	var body struct {
		Name   string `json:"name"`
		Number int    `json:"number"`
	}
	if err := readJSON(w, r, &body); err != nil {
		return nil, noop, err
	}
	return &services.RegisterPlayerInput{Name: body.Name, Number: body.Number}, noop, nil
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"success": true, "players": players}, nil)
}
