package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "default config", config: Config{Level: "info", OutputPaths: []string{"stdout"}}},
		{name: "debug level", config: Config{Level: "debug", OutputPaths: []string{"stdout"}}},
		{name: "invalid level falls back to info", config: Config{Level: "invalid", OutputPaths: []string{"stdout"}}},
		{name: "empty output paths", config: Config{Level: "info"}},
		{name: "development", config: Config{Level: "warn", Development: true, OutputPaths: []string{"stderr"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.config)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger without error")
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.log")
	l, err := New(Config{Level: "info", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info("clock mounted")
	l.Debug("filtered out")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "clock mounted") {
		t.Errorf("log file missing info entry: %s", data)
	}
	if strings.Contains(string(data), "filtered out") {
		t.Errorf("debug entry should be filtered at info level: %s", data)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	if l == nil {
		t.Fatal("NewNop() returned nil")
	}
	l.Info("test message")
}
