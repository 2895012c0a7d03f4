package handlers

import (
	"net/http"

	"github.com/mateus/app-pelada/services"
)

type PeladaHandler struct {
	peladaService services.PeladaService
}

func NewPeladaHandler(ps services.PeladaService) *PeladaHandler {
	return &PeladaHandler{peladaService: ps}
}

func (h *PeladaHandler) CreatePelada(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var input services.CreatePeladaInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pelada, err := h.peladaService.CreatePelada(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pelada": pelada}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PeladaHandler) ListPeladas(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	peladas, err := h.peladaService.ListPeladas(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"peladas": peladas}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PeladaHandler) GetPelada(w http.ResponseWriter, r *http.Request) {
	userID, peladaID, ok := peladaScope(w, r)
	if !ok {
		return
	}

	pelada, err := h.peladaService.GetPelada(r.Context(), userID, peladaID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pelada": pelada}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
