// Package logger configures the process-wide slog logger.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nhle/taskbot/internal/model"
)

// Setup installs the default logger described by cfg, writing to stderr.
func Setup(cfg model.LogConfig) error {
	h, err := NewHandler(os.Stderr, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// NewHandler builds a text or JSON handler wrapped with context enrichment.
func NewHandler(w io.Writer, cfg model.LogConfig) (slog.Handler, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return NewContextHandler(slog.NewTextHandler(w, opts)), nil
	case "json":
		return NewContextHandler(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parsing log level %q: %w", s, err)
	}
	return level, nil
}

// ContextHandler adds the Fields stored in the record's context.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler wraps h.
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	f := FieldsFrom(ctx)
	if f.ChatID != 0 {
		r.AddAttrs(slog.Int64("chat_id", f.ChatID))
	}
	if f.UserID != 0 {
		r.AddAttrs(slog.Int64("user_id", f.UserID))
	}
	if f.Command != "" {
		r.AddAttrs(slog.String("command", f.Command))
	}
	if f.IssueKey != "" {
		r.AddAttrs(slog.String("issue_key", f.IssueKey))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
