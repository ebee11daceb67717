package handler

import (
	"log/slog"
	"net/http"

	"github.com/mumvest/mumvest/internal/ctxkeys"
	"github.com/mumvest/mumvest/internal/service"
)

type BillingHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewBillingHandler(subscriptionService *service.SubscriptionService) *BillingHandler {
	return &BillingHandler{subscriptionService: subscriptionService}
}

func (h *BillingHandler) Subscription(w http.ResponseWriter, r *http.Request) {
	sub := ctxkeys.Subscription(r.Context())
	if sub == nil {
		var err error
		sub, err = h.subscriptionService.Subscription(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"subscription": sub,
		"goalLimit":    sub.GetGoalLimit(),
		"premium":      sub.IsPaid(),
	})
}

func (h *BillingHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subscriptionService.Unlock(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("subscription unlocked", "plan", sub.PlanID)
	writeJSON(w, http.StatusOK, sub)
}

func (h *BillingHandler) Downgrade(w http.ResponseWriter, r *http.Request) {
	err := h.subscriptionService.DowngradeToFree(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("subscription downgraded")
	w.WriteHeader(http.StatusNoContent)
}
