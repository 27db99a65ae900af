package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"renovado/internal/config"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"default json", "", false},
		{"explicit json", "json", false},
		{"console", "console", false},
		{"unknown", "xml", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(config.LogConfig{Level: "info", Format: tc.format})
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown format")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			defer l.Sync()
		})
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := New(config.LogConfig{Level: "chatty"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer l.Sync()

	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info must be enabled after the fallback")
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug must stay disabled after the fallback")
	}
}
