package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level LogLevel) (Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := NewZapLogger(LogConfig{Level: level, Output: buf})
	if err != nil {
		t.Fatalf("NewZapLogger() error = %v", err)
	}
	return logger, buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if DebugLevel.String() != "DEBUG" || ErrorLevel.String() != "ERROR" {
		t.Errorf("LogLevel.String() unexpected: %s %s", DebugLevel, ErrorLevel)
	}
	if LogLevel(42).String() != "UNKNOWN" {
		t.Errorf("LogLevel(42).String() = %s, want UNKNOWN", LogLevel(42))
	}
}

func TestZapAdapterWritesFields(t *testing.T) {
	logger, buf := newBufferLogger(t, DebugLevel)

	logger.Info("session cached", Field{"session_id", "abc123"}, Int("messages", 3))
	if adapter, ok := logger.(*ZapAdapter); ok {
		_ = adapter.Sync()
	}

	out := buf.String()
	if !strings.Contains(out, "session cached") {
		t.Errorf("log output missing message: %q", out)
	}
	if !strings.Contains(out, "abc123") {
		t.Errorf("log output missing field value: %q", out)
	}
}

func TestZapAdapterLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, WarnLevel)

	logger.Debug("too quiet")
	logger.Info("still too quiet")
	logger.Warn("loud enough")
	if adapter, ok := logger.(*ZapAdapter); ok {
		_ = adapter.Sync()
	}

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Errorf("debug/info leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "loud enough") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestZapAdapterErrorField(t *testing.T) {
	logger, buf := newBufferLogger(t, DebugLevel)

	logger.Error("upstream call failed", errors.New("connection refused"))
	if adapter, ok := logger.(*ZapAdapter); ok {
		_ = adapter.Sync()
	}

	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("error cause missing from output: %q", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	logger, buf := newBufferLogger(t, DebugLevel)

	child := logger.WithFields(String("component", "cache"))
	child.Info("hit")
	if adapter, ok := child.(*ZapAdapter); ok {
		_ = adapter.Sync()
	}

	if !strings.Contains(buf.String(), "cache") {
		t.Errorf("inherited field missing: %q", buf.String())
	}
}

func TestGlobalLogger(t *testing.T) {
	logger, _ := newBufferLogger(t, DebugLevel)
	SetGlobalLogger(logger)

	if GetGlobalLogger() != logger {
		t.Error("GetGlobalLogger() did not return the logger set by SetGlobalLogger()")
	}
}
