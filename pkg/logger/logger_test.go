package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestNewWritesRotatingFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "pos.log")

	log, err := New(Options{Mode: "production", Level: "info", FileEnable: true, Filename: filename})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("receipt emitted")
	_ = log.Sync()

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
