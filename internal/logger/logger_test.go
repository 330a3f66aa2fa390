package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskbot/internal/model"
)

func TestWithFields_Merges(t *testing.T) {
	ctx := WithFields(context.Background(), Fields{ChatID: 1, Command: "task"})
	ctx = WithFields(ctx, Fields{IssueKey: "AAI-1"})

	assert.Equal(t, Fields{ChatID: 1, Command: "task", IssueKey: "AAI-1"}, FieldsFrom(ctx))
	assert.Equal(t, Fields{}, FieldsFrom(context.Background()))
}

func TestContextHandler_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, model.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	log := slog.New(h).With("svc", "bot")

	ctx := WithFields(context.Background(), Fields{ChatID: 10, UserID: 20, Command: "task", IssueKey: "AAI-7"})
	log.DebugContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "bot", rec["svc"])
	assert.EqualValues(t, 10, rec["chat_id"])
	assert.EqualValues(t, 20, rec["user_id"])
	assert.Equal(t, "task", rec["command"])
	assert.Equal(t, "AAI-7", rec["issue_key"])
}

func TestNewHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, model.LogConfig{Level: "warn"})
	require.NoError(t, err)

	slog.New(h).Info("dropped")
	assert.Empty(t, buf.String())
}

func TestNewHandler_Invalid(t *testing.T) {
	_, err := NewHandler(&bytes.Buffer{}, model.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = NewHandler(&bytes.Buffer{}, model.LogConfig{Format: "xml"})
	assert.Error(t, err)
}
