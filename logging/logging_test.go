package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		Title    string
		Level    string
		Expected zerolog.Level
	}{
		{Title: "default", Level: "", Expected: zerolog.InfoLevel},
		{Title: "debug", Level: "debug", Expected: zerolog.DebugLevel},
		{Title: "warning alias", Level: "WARNING", Expected: zerolog.WarnLevel},
		{Title: "error", Level: "error", Expected: zerolog.ErrorLevel},
		{Title: "unknown", Level: "verbose", Expected: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(Config{Level: tt.Level, Output: &buf})
			if zerolog.GlobalLevel() != tt.Expected {
				t.Fatalf("expected level %v, got %v", tt.Expected, zerolog.GlobalLevel())
			}
		})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestNewLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: "info", Output: &buf})
	logger := NewLogger("catalog")
	logger.Info().Msg("hello")
	if !strings.Contains(buf.String(), `"component":"catalog"`) {
		t.Fatalf("expected component field in log line, got: %s", buf.String())
	}
}
