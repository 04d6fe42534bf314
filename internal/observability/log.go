package observability

import (
	"io"
	"log/slog"

	"github.com/huangsam/devscope/schema"
)

// SetupLogger builds a structured logger writing to w and installs it as the
// slog default. Diagnostics go to stderr in practice so that stdout stays
// reserved for command output.
func SetupLogger(level slog.Level, format schema.LogFormat, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case schema.JSONLog:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(slog.String("app", "devscope"))
	slog.SetDefault(logger)
	return logger
}
