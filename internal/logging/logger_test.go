package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONEntries(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir, LevelDebug)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.WithPlan("demo_plan").Info("plan saved", "tasks", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("log entry is not JSON: %v\n%s", err, raw)
	}
	if entry["msg"] != "plan saved" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["plan"] != "demo_plan" {
		t.Errorf("plan attr = %v", entry["plan"])
	}
	if entry["tasks"] != float64(3) {
		t.Errorf("tasks attr = %v", entry["tasks"])
	}
}

func TestNew_LevelFiltersEntries(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir, LevelWarn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, _ := os.ReadFile(filepath.Join(dir, LogFileName))
	if strings.Contains(string(raw), "quiet") {
		t.Errorf("INFO entry written at WARN level:\n%s", raw)
	}
	if !strings.Contains(string(raw), "loud") {
		t.Errorf("WARN entry missing:\n%s", raw)
	}
}

func TestChildLoggersInheritAttributes(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir, LevelDebug)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.WithPlan("p").WithTask("task-1a2b3c4d").Debug("status changed")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, _ := os.ReadFile(filepath.Join(dir, LogFileName))
	var entry map[string]any
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("log entry is not JSON: %v", err)
	}
	if entry["plan"] != "p" || entry["task_id"] != "task-1a2b3c4d" {
		t.Errorf("inherited attrs missing: %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nop logger: %v", err)
	}
}
