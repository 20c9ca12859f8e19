package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_StderrOnly(t *testing.T) {
	var buf bytes.Buffer
	lg, closeFn, err := New(Options{Level: "debug", Stderr: &buf, Component: "aura"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()

	lg.Debug("boot", "k", "v")

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("expected DEBUG record, got %q", out)
	}
	if !strings.Contains(out, "component=aura") {
		t.Errorf("expected component attr, got %q", out)
	}
}

func TestNew_FanoutToFileAndStderr(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "aura.log")

	lg, closeFn, err := New(Options{Level: "info", File: path, Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	lg.Debug("hidden")
	lg.Info("reading resolved", "source", "decoy")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	file := string(data)
	if !strings.Contains(file, `"msg":"reading resolved"`) || !strings.Contains(file, `"source":"decoy"`) {
		t.Errorf("file log missing record: %q", file)
	}
	if strings.Contains(file, "hidden") {
		t.Errorf("debug record leaked at info level: %q", file)
	}
	if !strings.Contains(buf.String(), "reading resolved") {
		t.Errorf("stderr missing record: %q", buf.String())
	}
}

func TestNew_NoOutputs(t *testing.T) {
	lg, closeFn, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()
	if lg.Enabled(context.Background(), slog.LevelError) {
		t.Error("logger without outputs should be disabled")
	}
	lg.Info("dropped")
}

func TestNop(t *testing.T) {
	lg := Nop()
	if lg.Enabled(context.Background(), slog.LevelError) {
		t.Error("Nop logger should be disabled")
	}
	lg.With("component", "oracle").Error("dropped")
}

func TestDefaultFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	p, err := DefaultFile()
	if err != nil {
		t.Fatalf("DefaultFile: %v", err)
	}
	if want := filepath.Join("/state", "aura", "aura.log"); p != want {
		t.Errorf("DefaultFile = %q, want %q", p, want)
	}
}
