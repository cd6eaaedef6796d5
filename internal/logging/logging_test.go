package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    zapcore.Level
	}{
		{"", false, zapcore.WarnLevel},
		{"info", false, zapcore.InfoLevel},
		{"error", true, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		logger, err := New(tt.level, "", tt.verbose)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.level, err)
		}
		if !logger.Core().Enabled(tt.want) {
			t.Errorf("New(%q, %v): level %s not enabled", tt.level, tt.verbose, tt.want)
		}
		if tt.want > zapcore.DebugLevel && logger.Core().Enabled(tt.want-1) {
			t.Errorf("New(%q, %v): level below %s enabled", tt.level, tt.verbose, tt.want)
		}
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("loud", "", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proyo.log")
	logger, err := New("info", path, false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file = %q", data)
	}
}
