package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestZapUnwrapsOwnLogger(t *testing.T) {
	l := New("travels-web", "error", false)
	if Zap(l).Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info enabled at error level")
	}
	if Zap(l.With(String("component", "api"))) == nil {
		t.Fatal("With lost the zap logger")
	}
}
