package handler

import (
	"net/http"

	"github.com/mumvest/mumvest/internal/service"
)

type InsightsHandler struct {
	insightsService *service.InsightsService
}

func NewInsightsHandler(insightsService *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

func (h *InsightsHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.insightsService.Breakdown(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (h *InsightsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.insightsService.Insights(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}
