package handler

import (
	"net/http"

	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/service"
)

type DashboardHandler struct {
	progressService     *service.ProgressService
	gamificationService *service.GamificationService
}

func NewDashboardHandler(progressService *service.ProgressService, gamificationService *service.GamificationService) *DashboardHandler {
	return &DashboardHandler{
		progressService:     progressService,
		gamificationService: gamificationService,
	}
}

type badgeView struct {
	model.Badge
	Earned bool `json:"earned"`
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.progressService.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) Gamification(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gamificationService.State())
}

// Badges lists the full catalog with earned flags, in award order.
func (h *DashboardHandler) Badges(w http.ResponseWriter, r *http.Request) {
	state := h.gamificationService.State()

	catalog := service.BadgeCatalog()
	badges := make([]badgeView, 0, len(catalog))
	for _, b := range catalog {
		badges = append(badges, badgeView{Badge: b, Earned: state.HasBadge(b.ID)})
	}
	writeJSON(w, http.StatusOK, badges)
}

func (h *DashboardHandler) Share(w http.ResponseWriter, r *http.Request) {
	reward, err := h.progressService.MarkShared(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reward)
}
