package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTraceID(t *testing.T) {
	id := GenerateTraceID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.NotEqual(t, id, GenerateTraceID())
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-123")
	assert.Equal(t, "trace-123", GetTraceID(ctx))
}

func TestGetTraceID_Empty(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	first := GetTraceID(ctx)
	require.NotEmpty(t, first)

	// Already-traced contexts are returned unchanged.
	again := EnsureTraceID(ctx)
	assert.Equal(t, first, GetTraceID(again))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.input).String(), "level %q", tt.input)
	}
}

func TestWithError(t *testing.T) {
	logger := slog.Default()
	assert.Equal(t, logger, WithError(logger, nil))
	assert.NotNil(t, WithError(logger, assert.AnError))
}

func TestWithComponent(t *testing.T) {
	logger := slog.Default()
	assert.NotEqual(t, logger, WithComponent(logger, "pipeline"))
}
