package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mumvest/mumvest/internal/service"
)

type AccountHandler struct {
	exportService *service.ExportService
}

func NewAccountHandler(exportService *service.ExportService) *AccountHandler {
	return &AccountHandler{exportService: exportService}
}

// Export downloads everything as a JSON attachment.
func (h *AccountHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.exportService.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=mumvest-export.json")

	err = json.NewEncoder(w).Encode(snapshot)
	if err != nil {
		slog.Error("failed to encode export", "error", err)
	}
}

func (h *AccountHandler) Backup(w http.ResponseWriter, r *http.Request) {
	result, err := h.exportService.Backup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *AccountHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.exportService.Counts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// Reset deletes all data. The body must confirm with {"confirm": "RESET"}.
func (h *AccountHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Confirm string `json:"confirm"`
	}
	err := decode(w, r, &body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if body.Confirm != "RESET" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: `confirm must be "RESET"`})
		return
	}

	err = h.exportService.Reset(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
