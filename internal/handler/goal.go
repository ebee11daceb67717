package handler

import (
	"net/http"
	"time"

	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/service"
	"github.com/shopspring/decimal"
)

type GoalHandler struct {
	goalService     *service.GoalService
	progressService *service.ProgressService
}

func NewGoalHandler(goalService *service.GoalService, progressService *service.ProgressService) *GoalHandler {
	return &GoalHandler{
		goalService:     goalService,
		progressService: progressService,
	}
}

type goalDetail struct {
	Goal                *model.Goal           `json:"goal"`
	Progress            model.GoalProgress    `json:"progress"`
	Entries             []*model.SavingsEntry `json:"entries"`
	ProjectedCompletion *time.Time            `json:"projectedCompletion"`
}

// List returns active goals, or all goals with ?archived=true.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true"

	goals, err := h.goalService.Goals(r.Context(), includeArchived)
	if err != nil {
		writeError(w, r, err)
		return
	}

	canCreate, err := h.goalService.CanCreateGoal(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"goals":         goals,
		"canCreateGoal": canCreate,
	})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateGoalInput
	err := decode(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.progressService.CreateGoal(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *GoalHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	goalID := r.PathValue("id")

	goal, err := h.goalService.Goal(ctx, goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	progress, err := h.goalService.GoalProgress(ctx, goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.goalService.Entries(ctx, goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	projected, err := h.goalService.ProjectedCompletion(ctx, goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goalDetail{
		Goal:                goal,
		Progress:            progress,
		Entries:             entries,
		ProjectedCompletion: projected,
	})
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update service.GoalUpdate
	err := decode(w, r, &update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Archive(w http.ResponseWriter, r *http.Request) {
	err := h.goalService.Archive(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.goalService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) Entries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.goalService.Entries(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// LogSavings records an entry against the goal in the path and returns the
// reward alongside the new progress.
func (h *GoalHandler) LogSavings(w http.ResponseWriter, r *http.Request) {
	var input service.LogSavingsInput
	err := decode(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	input.GoalID = r.PathValue("id")

	result, err := h.progressService.LogSavings(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *GoalHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount decimal.Decimal `json:"amount"`
	}
	err := decode(w, r, &body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.goalService.UpdateSavingsEntry(r.Context(), r.PathValue("id"), body.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *GoalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	err := h.goalService.DeleteSavingsEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.goalService.WeeklySummary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *GoalHandler) Methods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.SavingsMethods)
}
