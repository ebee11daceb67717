package handler

import (
	"net/http"

	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/service"
)

type ProfileHandler struct {
	userService *service.UserService
}

func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

func (h *ProfileHandler) OnboardingStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	done, err := h.userService.IsOnboarded(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	selections, err := h.userService.Selections(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"completed":  done,
		"selections": selections,
	})
}

func (h *ProfileHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var sel model.OnboardingSelections
	err := decode(w, r, &sel)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.userService.CompleteOnboarding(r.Context(), sel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.Profile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	err := decode(w, r, &body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.userService.UpdateName(r.Context(), body.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
