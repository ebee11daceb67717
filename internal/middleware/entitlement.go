package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mumvest/mumvest/internal/ctxkeys"
	"github.com/mumvest/mumvest/internal/service"
)

// Entitlement loads the current plan into the request context.
func Entitlement(subscriptionService *service.SubscriptionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sub, err := subscriptionService.Subscription(r.Context())
			if err != nil {
				// Services re-check entitlement, so continue without it
				slog.Warn("failed to load subscription", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithSubscription(r.Context(), sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireFeature rejects requests with 402 when the plan in context lacks
// feature. Requests without a plan in context pass through.
func RequireFeature(feature string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sub := ctxkeys.Subscription(r.Context())
			if sub != nil && !sub.HasFeature(feature) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusPaymentRequired)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": service.ErrPremiumRequired.Error() + ": " + feature,
				})
				return
			}
			next(w, r)
		}
	}
}
