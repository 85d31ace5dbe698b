package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackendWritesJSONLines(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	backend, err := NewFileBackend(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}

	l := New("tool.vet", LevelTrace, backend)
	l.Debugf("filtered by file level")
	l.Infof("vet exited with %s", "success")
	l.Errorf("boom")

	if err := backend.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Closing twice is harmless
	if err := backend.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	f, err := os.Open(backend.RunFile())
	if err != nil {
		t.Fatalf("open run log: %v", err)
	}
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("run log line is not JSON: %q: %v", scanner.Text(), err)
		}
		entries = append(entries, entry)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), entries)
	}
	if entries[0]["msg"] != "vet exited with success" {
		t.Errorf("msg = %v", entries[0]["msg"])
	}
	if entries[0]["logger"] != "tool.vet" {
		t.Errorf("logger = %v", entries[0]["logger"])
	}
	if entries[1]["level"] != "error" {
		t.Errorf("level = %v", entries[1]["level"])
	}
	if entries[0]["run_id"] != backend.RunID() || backend.RunID() == "" {
		t.Errorf("run_id = %v, want %q", entries[0]["run_id"], backend.RunID())
	}
}

func TestFileBackendLatestSymlink(t *testing.T) {
	logDir := t.TempDir()

	backend, err := NewFileBackend(logDir, "debug")
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	defer backend.Close()

	target, err := os.Readlink(filepath.Join(logDir, LatestLogName))
	if err != nil {
		t.Fatalf("Readlink() error = %v", err)
	}
	if target != filepath.Base(backend.RunFile()) {
		t.Errorf("latest symlink -> %q, want %q", target, filepath.Base(backend.RunFile()))
	}
}
