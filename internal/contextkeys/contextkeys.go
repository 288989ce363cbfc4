package contextkeys

import (
	"context"
	"property-client/internal/core/port"

	"github.com/google/uuid"
)

type loggerKeyType struct{}
type traceIDKeyType struct{}

var (
	loggerKey  = loggerKeyType{}
	traceIDKey = traceIDKeyType{}
)

// ContextWithLogger помещает логгер в контекст
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext извлекает логгер из контекста, без логгера возвращает noop
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey).(port.LoggerPort); ok {
		return logger
	}
	return noopLogger{}
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext возвращает пустую строку, если trace_id не найден
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// WithActionScope готовит контекст одного действия пользователя:
// trace_id (новый, если traceID пустой) и логгер, обогащенный этим trace_id.
func WithActionScope(ctx context.Context, logger port.LoggerPort, traceID string) (context.Context, port.LoggerPort) {
	if traceID == "" {
		traceID = uuid.New().String()
	}
	scoped := logger.WithFields(port.Fields{"trace_id": traceID})

	ctx = ContextWithTraceID(ctx, traceID)
	ctx = ContextWithLogger(ctx, scoped)
	return ctx, scoped
}

type noopLogger struct{}

func (noopLogger) Info(msg string, fields port.Fields)             {}
func (noopLogger) Warn(msg string, fields port.Fields)             {}
func (noopLogger) Error(msg string, err error, fields port.Fields) {}
func (noopLogger) Debug(msg string, fields port.Fields)            {}
func (n noopLogger) WithFields(fields port.Fields) port.LoggerPort { return n }
