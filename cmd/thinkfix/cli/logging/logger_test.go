package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

func TestInit_DisabledByDefault(t *testing.T) {
	home := setTestHome(t)
	t.Setenv(DebugEnvVar, "")
	t.Setenv(LogLevelEnvVar, "")
	SetLogLevelGetter(nil)

	Init()
	defer Close()

	// Logging calls must be safe no-ops.
	Info(context.Background(), "should go nowhere")

	logPath := filepath.Join(home, ".config", "thinkfix", "logs", "hook.log")
	if _, err := os.Stat(logPath); err == nil {
		t.Error("no log file may be created while logging is disabled")
	}
}

func TestInit_DebugEnvEnables(t *testing.T) {
	home := setTestHome(t)
	t.Setenv(DebugEnvVar, "1")
	t.Setenv(LogLevelEnvVar, "")

	Init()
	Debug(WithComponent(context.Background(), "test"), "hello", slog.String("k", "v"))
	Close()

	data, err := os.ReadFile(filepath.Join(home, ".config", "thinkfix", "logs", "hook.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log entry is not JSON: %v", err)
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want %q", entry["msg"], "hello")
	}
	if entry["component"] != "test" {
		t.Errorf("component = %v, want %q", entry["component"], "test")
	}
	if entry["k"] != "v" {
		t.Errorf("k = %v, want %q", entry["k"], "v")
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	home := setTestHome(t)
	t.Setenv(DebugEnvVar, "")
	t.Setenv(LogLevelEnvVar, "WARN")

	Init()
	ctx := context.Background()
	Debug(ctx, "dropped")
	Info(ctx, "also dropped")
	Warn(ctx, "kept")
	Close()

	data, err := os.ReadFile(filepath.Join(home, ".config", "thinkfix", "logs", "hook.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "dropped") {
		t.Errorf("sub-threshold entries written: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("WARN entry missing: %s", out)
	}
}

func TestSessionIDFromContext(t *testing.T) {
	ctx := WithSession(context.Background(), "abc-123")
	if got := SessionIDFromContext(ctx); got != "abc-123" {
		t.Errorf("SessionIDFromContext() = %q, want %q", got, "abc-123")
	}
	if got := SessionIDFromContext(context.Background()); got != "" {
		t.Errorf("SessionIDFromContext(empty) = %q, want empty", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
