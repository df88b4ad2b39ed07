package panolens

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetLoggerNilRestoresNop(t *testing.T) {
	custom := zap.NewExample()
	SetLogger(custom)
	if Logger() != custom {
		t.Error("custom logger not installed")
	}

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("nil logger installed")
	}
	Logger().Info("must not panic")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
