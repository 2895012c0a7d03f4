package handlers

import (
	"net/http"

	"github.com/mateus/app-pelada/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

func (h *MatchHandler) RegisterMatch(w http.ResponseWriter, r *http.Request) {
	userID, peladaID, ok := peladaScope(w, r)
	if !ok {
		return
	}

	var input services.RegisterMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RegisterMatch(r.Context(), userID, peladaID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID, peladaID, ok := peladaScope(w, r)
	if !ok {
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), userID, peladaID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
