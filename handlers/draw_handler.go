package handlers

import (
	"net/http"

	"github.com/mateus/app-pelada/services"
)

type DrawHandler struct {
	drawService services.DrawService
}

func NewDrawHandler(ds services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: ds}
}

// DrawTeams responds with {"team_a": [...], ..., "team_d": [...]}.
func (h *DrawHandler) DrawTeams(w http.ResponseWriter, r *http.Request) {
	userID, peladaID, ok := peladaScope(w, r)
	if !ok {
		return
	}

	var input services.DrawInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.drawService.DrawTeams(r.Context(), userID, peladaID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, teams, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
