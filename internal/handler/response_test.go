package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/service"
	"github.com/mumvest/mumvest/internal/validation"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name is required", validation.ErrInvalid), http.StatusBadRequest},
		{repository.ErrGoalNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", repository.ErrSavingsEntryNotFound), http.StatusNotFound},
		{service.ErrContentNotFound, http.StatusNotFound},
		{service.ErrGoalLimitReached, http.StatusPaymentRequired},
		{fmt.Errorf("%w: export", service.ErrPremiumRequired), http.StatusPaymentRequired},
		{service.ErrChallengeActive, http.StatusConflict},
		{service.ErrAlreadyOnboarded, http.StatusConflict},
		{service.ErrBackupsDisabled, http.StatusServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil), errors.New("connection refused"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil), repository.ErrGoalNotFound)
	require.JSONEq(t, `{"error":"goal not found"}`, rec.Body.String())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var body struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Holiday"}`))
	require.NoError(t, decode(httptest.NewRecorder(), req, &body))
	require.Equal(t, "Holiday", body.Name)

	for _, raw := range []string{``, `{"name":`, `{"nmae":"x"}`, `[]`} {
		req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		require.ErrorIs(t, decode(httptest.NewRecorder(), req, &body), validation.ErrInvalid, raw)
	}
}
