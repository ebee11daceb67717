package handler

import (
	"net/http"

	"github.com/mumvest/mumvest/internal/service"
)

type ContentHandler struct {
	contentService  *service.ContentService
	progressService *service.ProgressService
}

func NewContentHandler(contentService *service.ContentService, progressService *service.ProgressService) *ContentHandler {
	return &ContentHandler{
		contentService:  contentService,
		progressService: progressService,
	}
}

func (h *ContentHandler) TodaysMoment(w http.ResponseWriter, r *http.Request) {
	today, err := h.contentService.TodaysMoment(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, today)
}

func (h *ContentHandler) MomentArchive(w http.ResponseWriter, r *http.Request) {
	moments, err := h.contentService.MomentArchive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moments)
}

func (h *ContentHandler) SavedMoments(w http.ResponseWriter, r *http.Request) {
	moments, err := h.contentService.SavedMoments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moments)
}

func (h *ContentHandler) Moment(w http.ResponseWriter, r *http.Request) {
	moment, err := h.contentService.Moment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moment)
}

func (h *ContentHandler) ReadMoment(w http.ResponseWriter, r *http.Request) {
	result, err := h.progressService.ReadMoment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ContentHandler) ToggleSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := h.contentService.ToggleMomentSaved(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

func (h *ContentHandler) RateMoment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Helpful bool `json:"helpful"`
	}
	err := decode(w, r, &body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.contentService.RateMoment(r.Context(), r.PathValue("id"), body.Helpful)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Swaps lists swaps not yet adopted, optionally filtered by ?category=.
func (h *ContentHandler) Swaps(w http.ResponseWriter, r *http.Request) {
	swaps, err := h.contentService.Swaps(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, swaps)
}

func (h *ContentHandler) AdoptedSwaps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	swaps, err := h.contentService.AdoptedSwaps(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	estimate, err := h.contentService.AdoptedSavingsEstimate(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"swaps":                   swaps,
		"estimatedMonthlySavings": estimate,
	})
}

func (h *ContentHandler) AdoptSwap(w http.ResponseWriter, r *http.Request) {
	result, err := h.progressService.AdoptSwap(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ContentHandler) Challenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.contentService.Challenges(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (h *ContentHandler) ActiveChallenge(w http.ResponseWriter, r *http.Request) {
	active, err := h.contentService.ActiveChallenge(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if active == nil {
		writeError(w, r, service.ErrNoActiveChallenge)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (h *ContentHandler) StartChallenge(w http.ResponseWriter, r *http.Request) {
	state, err := h.contentService.StartChallenge(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *ContentHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index int `json:"index"`
	}
	err := decode(w, r, &body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.progressService.CheckIn(r.Context(), body.Index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ContentHandler) AbandonChallenge(w http.ResponseWriter, r *http.Request) {
	err := h.contentService.AbandonChallenge(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
