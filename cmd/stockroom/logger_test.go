package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSplitHandlerRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	h, err := newSplitHandler(&out, &errOut, slog.LevelInfo, "text")
	if err != nil {
		t.Fatalf("newSplitHandler: %v", err)
	}
	logger := slog.New(h).With("component", "test")

	logger.Debug("hidden")
	logger.Info("info line")
	logger.Warn("warn line")
	logger.Error("error line")

	stdout, stderr := out.String(), errOut.String()
	if strings.Contains(stdout+stderr, "hidden") {
		t.Error("debug record should be dropped at info level")
	}
	if !strings.Contains(stdout, "info line") || !strings.Contains(stdout, "warn line") {
		t.Errorf("expected info and warn on stdout, got %q", stdout)
	}
	if strings.Contains(stdout, "error line") || !strings.Contains(stderr, "error line") {
		t.Errorf("expected error only on stderr, stdout=%q stderr=%q", stdout, stderr)
	}
	if !strings.Contains(stderr, "component=test") {
		t.Error("expected attrs to carry over to the error handler")
	}
}

func TestSplitHandlerJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	h, err := newSplitHandler(&out, &errOut, slog.LevelDebug, "json")
	if err != nil {
		t.Fatalf("newSplitHandler: %v", err)
	}

	slog.New(h).WithGroup("req").Debug("visible", "id", 7)

	var rec map[string]any
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("expected one json record, got %q: %v", out.String(), err)
	}
	if rec["msg"] != "visible" {
		t.Errorf("unexpected msg %v", rec["msg"])
	}
	if group, ok := rec["req"].(map[string]any); !ok || group["id"] != float64(7) {
		t.Errorf("expected grouped attr, got %v", rec["req"])
	}
	if rec["source"] == nil {
		t.Error("expected source location at debug level")
	}
}

func TestSplitHandlerUnknownFormat(t *testing.T) {
	if _, err := newSplitHandler(nil, nil, slog.LevelInfo, "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
