package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/service"
	"github.com/mumvest/mumvest/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors to status codes. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrSavingsEntryNotFound),
		errors.Is(err, repository.ErrProfileNotFound),
		errors.Is(err, repository.ErrChallengeNotFound),
		errors.Is(err, service.ErrContentNotFound),
		errors.Is(err, service.ErrNoActiveChallenge):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGoalLimitReached),
		errors.Is(err, service.ErrPremiumRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, service.ErrChallengeActive),
		errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrAlreadyOnboarded):
		return http.StatusConflict
	case errors.Is(err, service.ErrBackupsDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body into v. Malformed bodies are validation errors.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err != nil {
		return fmt.Errorf("%w: malformed request body: %v", validation.ErrInvalid, err)
	}
	return nil
}
