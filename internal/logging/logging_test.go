package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_Debugf(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  bool
	}{
		{"debug on", true, true},
		{"debug off", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewFactoryWriter(&buf, tt.debug).New("sync")
			logger.Debugf("quest count %d", 3)

			got := strings.Contains(buf.String(), "DEBUG: quest count 3")
			if got != tt.want {
				t.Errorf("debug output present = %v, want %v (output %q)", got, tt.want, buf.String())
			}
			if logger.DebugEnabled() != tt.debug {
				t.Errorf("DebugEnabled() = %v, want %v", logger.DebugEnabled(), tt.debug)
			}
		})
	}
}

func TestLogger_Prefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFactoryWriter(&buf, false).New("cache")
	logger.Warnf("stale %s", "entry")

	if got := buf.String(); got != "[cache] WARNING: stale entry\n" {
		t.Errorf("output = %q", got)
	}
}

func TestNilLoggerDebugf(t *testing.T) {
	var logger *Logger
	logger.Debugf("ignored")
	if logger.DebugEnabled() {
		t.Error("nil logger should not have debug enabled")
	}
}

func TestFactory_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questtool.log")

	f := NewFactory(Options{File: path})
	f.New("sync").Printf("hello")
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "[sync] hello") {
		t.Errorf("log file content = %q", data)
	}
}
