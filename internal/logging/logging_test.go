package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
		{"xml", log.TextFormatter},
	}

	for _, tt := range tests {
		if got := ParseFormatter(tt.input); got != tt.want {
			t.Errorf("ParseFormatter(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("warning") || ValidLevel("loud") {
		t.Error("ValidLevel accepted or rejected the wrong names")
	}
	if !ValidFormat("logfmt") || ValidFormat("yaml") {
		t.Error("ValidFormat accepted or rejected the wrong names")
	}
}

func TestNewTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("debug", "text", false, false))

	logger.Info("loaded tasks", "count", 3)
	logger.Debug("command ignored", "command", "next")

	out := buf.String()
	for _, want := range []string{"INFO", "loaded tasks", "count=3", "DEBU", "command ignored"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("warn", "text", false, false))

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level:\n%s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing:\n%s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("info", "json", false, false))

	logger.Info("saved tasks", "count", 2)

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if entry["msg"] != "saved tasks" {
		t.Errorf("msg: got %v, want saved tasks", entry["msg"])
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasklist.log")

	logger, closer, err := OpenFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	logger.Info("first")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	logger, closer, err = OpenFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("OpenFile again: %v", err)
	}
	logger.Info("second")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log file not appended:\n%s", data)
	}
}

func TestOpenFileEmptyPath(t *testing.T) {
	if _, _, err := OpenFile("", DefaultOptions()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
