package handler

import (
	"net/http"

	"github.com/mumvest/mumvest/internal/service"
)

type LessonHandler struct {
	lessonService   *service.LessonService
	progressService *service.ProgressService
}

func NewLessonHandler(lessonService *service.LessonService, progressService *service.ProgressService) *LessonHandler {
	return &LessonHandler{
		lessonService:   lessonService,
		progressService: progressService,
	}
}

func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessonService.Lessons(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (h *LessonHandler) Levels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.lessonService.LevelProgress(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, levels)
}

func (h *LessonHandler) Show(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.lessonService.Lesson(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (h *LessonHandler) Complete(w http.ResponseWriter, r *http.Request) {
	result, err := h.progressService.CompleteLesson(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
