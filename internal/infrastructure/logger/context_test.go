package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctxWithLogger := WithContext(context.Background(), logger)

	retrievedLogger := FromContext(ctxWithLogger)
	assert.Same(t, logger, retrievedLogger)
}

func TestFromContext_NotFound(t *testing.T) {
	// Should return a no-op logger
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	requestID := "req-123"
	newCtx, newLogger := WithRequestID(context.Background(), logger, requestID)

	assert.Equal(t, requestID, GetRequestID(newCtx))
	assert.Same(t, newLogger, FromContext(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}
