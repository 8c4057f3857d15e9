package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextHandlerAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithTool(WithRequestID(context.Background(), "7"), "stop_timer")
	logger.InfoContext(ctx, "Timer stopped")

	out := buf.String()
	assert.Contains(t, out, "request.id=7")
	assert.Contains(t, out, "request.tool=stop_timer")
}

func TestContextHandlerWithoutContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil))).With("component", "store")

	logger.Info("plain")

	assert.NotContains(t, buf.String(), "request.")
	assert.Contains(t, buf.String(), "component=store")
}

func TestGetContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	ctx = WithTool(ctx, "start_timer")
	assert.Equal(t, LogContext{RequestID: "abc", Tool: "start_timer"}, GetContext(ctx))
	assert.Equal(t, LogContext{}, GetContext(context.Background()))
}
