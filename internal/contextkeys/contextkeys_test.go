package contextkeys

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext_FallsBackToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)

	// noop не должен паниковать
	logger.WithFields(nil).Error("boom", nil, nil)
}

func TestWithActionScope_GeneratesTraceID(t *testing.T) {
	ctx, logger := WithActionScope(context.Background(), LoggerFromContext(context.Background()), "")

	traceID := TraceIDFromContext(ctx)
	_, err := uuid.Parse(traceID)
	require.NoError(t, err)
	assert.Equal(t, logger, LoggerFromContext(ctx))
}

func TestWithActionScope_KeepsIncomingTraceID(t *testing.T) {
	ctx, _ := WithActionScope(context.Background(), noopLogger{}, "trace-42")
	assert.Equal(t, "trace-42", TraceIDFromContext(ctx))
}
