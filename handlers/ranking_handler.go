package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mateus/app-pelada/report"
	"github.com/mateus/app-pelada/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rs services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rs}
}

func (h *RankingHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	userID, peladaID, ok := peladaScope(w, r)
	if !ok {
		return
	}

	entries, err := h.rankingService.GetRanking(r.Context(), userID, peladaID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportPDF streams the ranking as a PDF attachment.
func (h *RankingHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	userID, peladaID, ok := peladaScope(w, r)
	if !ok {
		return
	}

	doc, fileName, err := h.rankingService.ExportPDF(r.Context(), userID, peladaID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		slog.WarnContext(r.Context(), "failed to stream ranking pdf", slog.Int("pelada_id", peladaID), slog.Any("error", err))
	}
}

func (h *RankingHandler) PublishPDF(w http.ResponseWriter, r *http.Request) {
	userID, peladaID, ok := peladaScope(w, r)
	if !ok {
		return
	}

	location, err := h.rankingService.PublishPDF(r.Context(), userID, peladaID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"url": location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
