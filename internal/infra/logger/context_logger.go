package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

const (
	// Business context keys carried through an orchestration cycle.
	CycleIDKey        ContextKey = "cycle.id"
	StageKey          ContextKey = "cycle.stage"
	ClassificationKey ContextKey = "cycle.classification"
)

// CycleContextHandler decorates records with orchestration cycle context so
// every log line emitted during a cycle can be correlated.
type CycleContextHandler struct {
	inner slog.Handler
}

func NewCycleContextHandler(inner slog.Handler) *CycleContextHandler {
	return &CycleContextHandler{inner: inner}
}

func (h *CycleContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *CycleContextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, key := range []ContextKey{CycleIDKey, StageKey, ClassificationKey} {
		if value := ctx.Value(key); value != nil {
			r.AddAttrs(slog.Any(string(key), value))
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *CycleContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CycleContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *CycleContextHandler) WithGroup(name string) slog.Handler {
	return &CycleContextHandler{inner: h.inner.WithGroup(name)}
}

// WithCycleID tags the context with the orchestration cycle identifier.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, CycleIDKey, cycleID)
}

// WithStage tags the context with the current cycle stage.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}

// WithClassification tags the context with the routing decision.
func WithClassification(ctx context.Context, classification string) context.Context {
	return context.WithValue(ctx, ClassificationKey, classification)
}
