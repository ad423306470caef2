package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	loggerKey  contextKey = "securetoken.logger"
	batchIDKey contextKey = "securetoken.batch_id"
	commandKey contextKey = "securetoken.command"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithBatchID adds an issuance batch ID to the context.
func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, batchIDKey, id)
}

// BatchIDFromContext extracts the batch ID from context.
func BatchIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(batchIDKey).(string); ok {
		return id
	}
	return ""
}

// WithCommand adds the running CLI command name to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// CommandFromContext extracts the command name from context.
func CommandFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger
// with the batch ID and command name from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if id := BatchIDFromContext(ctx); id != "" {
		l = l.With("batch_id", id)
	}
	if name := CommandFromContext(ctx); name != "" {
		l = l.With("command", name)
	}

	return l
}
