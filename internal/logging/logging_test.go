package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFieldHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	l := WithDate(WithCategory(WithOperation(logger, "import"), "budget"), "2024-06-01")
	l.Warn().Msg("Skipping invalid entry")

	var fields map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	want := map[string]string{"operation": "import", "category": "budget", "date": "2024-06-01"}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("field %s = %v, want %s", k, fields[k], v)
		}
	}
}

func TestLogSaveAndAPICall(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogSave(logger, "mood", "2024-06-01")
	LogAPICall(logger, "GET", "/recommendations", 5*time.Millisecond, errors.New("boom"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	var save, call map[string]interface{}
	if err := json.Unmarshal(lines[0], &save); err != nil {
		t.Fatalf("decode save: %v", err)
	}
	if err := json.Unmarshal(lines[1], &call); err != nil {
		t.Fatalf("decode call: %v", err)
	}
	if save["event"] != "save" || save["category"] != "mood" {
		t.Errorf("save = %v", save)
	}
	if call["event"] != "api_call" || call["error"] != "boom" {
		t.Errorf("call = %v", call)
	}
}

func TestNewLoggerWithConfig_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "moodvibe.log")
	logger := NewLoggerWithConfig(LogConfig{Level: "info", File: true, FilePath: path, MaxSize: 1})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger.Info().Msg("hello")
	if matches, _ := filepath.Glob(path); len(matches) != 1 {
		t.Errorf("log file %s was not created", path)
	}
}
