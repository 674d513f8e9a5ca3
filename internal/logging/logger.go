// Package logging defines the structured logger passed through the server.
// NewJSONLogger wraps log/slog; Nop discards everything and is handy in tests.
package logging

import "context"

// Logger takes a message plus alternating key/value args:
//
//	log.Info(ctx, "task created", "task_id", id, "user_id", userID)
//
// The request id stored in ctx, if any, is attached to every record.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
