package logger

import (
	"testing"

	"github.com/samvad-hq/bigstock-client/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitInstallsPackageLogger(t *testing.T) {
	log, err := Init(&config.Config{LogLevel: "error"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if S == nil {
		t.Fatalf("expected package logger to be set")
	}
	log.DebugObj("filtered", "k", 1)
	if err := Close(); err != nil {
		t.Logf("sync on stderr: %v", err)
	}

	var nop Logger = &NopLogger{}
	nop.ErrorObj("dropped", "k", nil)
}
