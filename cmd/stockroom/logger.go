package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// handlerFunc builds a slog.Handler for one output stream.
type handlerFunc func(io.Writer, *slog.HandlerOptions) slog.Handler

func textHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewTextHandler(w, opts)
}

func jsonHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(w, opts)
}

// splitHandler sends ERROR+ records to one handler and everything else to
// another. Records below level are dropped before either sees them.
type splitHandler struct {
	level  slog.Leveler
	normal slog.Handler
	errors slog.Handler
}

func newSplitHandler(out, errOut io.Writer, level slog.Level, format string) (*splitHandler, error) {
	var build handlerFunc
	switch format {
	case "", "text":
		build = textHandler
	case "json":
		build = jsonHandler
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: level < slog.LevelInfo}
	return &splitHandler{
		level:  level,
		normal: build(out, opts),
		errors: build(errOut, opts),
	}, nil
}

func (h *splitHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return h.errors.Handle(ctx, r)
	}
	return h.normal.Handle(ctx, r)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{level: h.level, normal: h.normal.WithAttrs(attrs), errors: h.errors.WithAttrs(attrs)}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{level: h.level, normal: h.normal.WithGroup(name), errors: h.errors.WithGroup(name)}
}

// setupLogger installs the default logger. When logPath is set the file
// receives a copy of every record. The returned func closes the file.
func setupLogger(logPath string, level slog.Level, format string) (func(), error) {
	out, errOut := io.Writer(os.Stdout), io.Writer(os.Stderr)
	closeFile := func() {}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		closeFile = func() { f.Close() }
		out, errOut = io.MultiWriter(out, f), io.MultiWriter(errOut, f)
	}

	h, err := newSplitHandler(out, errOut, level, format)
	if err != nil {
		closeFile()
		return nil, err
	}
	slog.SetDefault(slog.New(h))
	return closeFile, nil
}
