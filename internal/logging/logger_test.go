package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: "warn", Format: "text", Output: &buf})

	ctx := context.Background()
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, nil, "warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: "info", Format: "json", Output: &buf})

	logger.WithComponent("build").Error(context.Background(), errors.New("boom"), "build failed", "template", "pages/home.html.tmpl")

	out := buf.String()
	assert.Contains(t, out, `"component":"build"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"template":"pages/home.html.tmpl"`)
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: "info", Format: "json", Output: &buf})

	scoped := logger.With("request_id", "abc123")
	scoped.Info(context.Background(), "handled")

	assert.Contains(t, buf.String(), `"request_id":"abc123"`)
}
