package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Str("component", "test").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"time"`) {
		t.Errorf("warn entry missing or without timestamp: %q", out)
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jetaudio.log")
	log, closer, err := ToFile(path, "debug")
	if err != nil {
		t.Fatalf("ToFile() error = %v", err)
	}
	log.Debug().Msg("to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
}

func TestToFile_BadPath(t *testing.T) {
	_, _, err := ToFile(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), "info")
	if err == nil {
		t.Error("ToFile() into a missing directory succeeded")
	}
}

func TestToConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := ToConsole(&buf, "info")
	logger.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("console output = %q", buf.String())
	}
}
