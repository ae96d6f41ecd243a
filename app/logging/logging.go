// Package logging tags slog records with the generation run and the post
// being processed, both carried in context.
package logging

import (
	"context"

	"golang.org/x/exp/slog"
)

type ctxKey int

const (
	runIDKey ctxKey = iota
	postKey
)

// ContextWithRunID returns a new context with the given run ID.
func ContextWithRunID(parent context.Context, runID string) context.Context {
	return context.WithValue(parent, runIDKey, runID)
}

// RunIDFromContext returns run id from context.
func RunIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(runIDKey).(string)
	return v, ok
}

// ContextWithPost returns a new context scoped to the post with the given slug.
func ContextWithPost(parent context.Context, slug string) context.Context {
	return context.WithValue(parent, postKey, slug)
}

// contextAttrs returns the context values to attach to a record.
func contextAttrs(ctx context.Context) []slog.Attr {
	var res []slog.Attr
	if id, ok := RunIDFromContext(ctx); ok {
		res = append(res, slog.String("run_id", id))
	}
	if slug, ok := ctx.Value(postKey).(string); ok && slug != "" {
		res = append(res, slog.String("post", slug))
	}
	return res
}

// Handler wraps slog.Handler and adds the run id and post slug found
// in context to every record.
type Handler struct {
	slog.Handler
}

// Handle implements slog.Handler interface.
func (h Handler) Handle(ctx context.Context, rec slog.Record) error {
	rec.AddAttrs(contextAttrs(ctx)...)
	return h.Handler.Handle(ctx, rec)
}

// WithGroup returns a new Handler with the given group.
func (h Handler) WithGroup(group string) slog.Handler {
	return Handler{Handler: h.Handler.WithGroup(group)}
}

// WithAttrs returns a new Handler with the given attributes.
func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{Handler: h.Handler.WithAttrs(attrs)}
}
