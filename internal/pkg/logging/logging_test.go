package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/samirrijal/quadroute/internal/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := logging.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "zoom", 16)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["msg"] != "kept" || rec["zoom"] != float64(16) {
		t.Errorf("unexpected record %v", rec)
	}
	if slog.Default() != logger {
		t.Error("expected Setup to install the default logger")
	}
}

func TestSetup_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup(&buf, "debug", "text")
	logger.Debug("tile", "path", "211")

	if got := buf.String(); !strings.Contains(got, "msg=tile") || !strings.Contains(got, "path=211") {
		t.Errorf("unexpected text output %q", got)
	}
}
