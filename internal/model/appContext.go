package model

import "context"

type contextKey string

const (
	ContextTrigger contextKey = "trigger"
)

// Trigger names the producer that asked for a dispatch.
type Trigger string

const (
	TriggerPoller    Trigger = "poller"
	TriggerHTTP      Trigger = "http"
	TriggerWebSocket Trigger = "websocket"
	TriggerTest      Trigger = "test"
)

func WithTrigger(ctx context.Context, t Trigger) context.Context {
	return context.WithValue(ctx, ContextTrigger, t)
}

func TriggerFrom(ctx context.Context) Trigger {
	if t, ok := ctx.Value(ContextTrigger).(Trigger); ok {
		return t
	}
	return "unknown"
}
