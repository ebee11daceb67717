package handler

import (
	"net/http"

	"github.com/mumvest/mumvest/internal/service"
)

type SettingsHandler struct {
	userService            *service.UserService
	personalizationService *service.PersonalizationService
}

func NewSettingsHandler(userService *service.UserService, personalizationService *service.PersonalizationService) *SettingsHandler {
	return &SettingsHandler{
		userService:            userService,
		personalizationService: personalizationService,
	}
}

func (h *SettingsHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Currency string `json:"currency"`
	}
	err := decode(w, r, &body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	currency, err := h.userService.UpdateCurrency(r.Context(), body.Currency)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"currency": string(currency),
		"symbol":   currency.Symbol(),
	})
}

func (h *SettingsHandler) UpdateNotificationTime(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Time string `json:"time"`
	}
	err := decode(w, r, &body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.userService.UpdateNotificationTime(r.Context(), body.Time)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) ToggleNotifications(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.userService.ToggleNotifications(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": enabled})
}

// Preferences lists content categories by learned interest.
func (h *SettingsHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	preferred, err := h.personalizationService.Preferred(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferred)
}
