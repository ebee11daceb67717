package ctxkeys

import (
	"context"

	"github.com/mumvest/mumvest/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	SubscriptionKey contextKey = "subscription"
	RequestIDKey    contextKey = "request_id"
)

func Subscription(ctx context.Context) *model.Subscription {
	subscription, _ := ctx.Value(SubscriptionKey).(*model.Subscription)
	return subscription
}

func WithSubscription(ctx context.Context, subscription *model.Subscription) context.Context {
	return context.WithValue(ctx, SubscriptionKey, subscription)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
