package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}
	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestLockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("lock file should remain after Unlock, stat err = %v", err)
	}

	// A second holder locks the same file once released
	other := NewFileLock(lockPath)
	if err := other.Acquire(); err != nil {
		t.Fatalf("Acquire() after Unlock error = %v", err)
	}
	if err := other.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
}

func TestAcquireHeldLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), ".multilint.lock")

	first := NewFileLock(lockPath)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	defer first.Unlock()

	second := NewFileLock(lockPath)
	err := second.Acquire()
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire() error = %v, want ErrLocked", err)
	}
	if !strings.Contains(err.Error(), lockPath) {
		t.Errorf("error should name the lock file: %v", err)
	}
}

func TestTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock := NewFileLock(lockPath)
	acquired, err := lock.TryLock()
	if err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}
	if !acquired {
		t.Fatal("TryLock() should acquire a free lock")
	}
	defer lock.Unlock()

	other := NewFileLock(lockPath)
	acquired, err = other.TryLock()
	if err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}
	if acquired {
		t.Error("TryLock() should not acquire a held lock")
	}
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	if err := AtomicWrite(path, []byte("hello"), 0600); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestAtomicWriteNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	for i := 0; i < 3; i++ {
		if err := AtomicWrite(path, []byte("x"), 0644); err != nil {
			t.Fatalf("AtomicWrite() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestRewriteFileKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.go")
	if err := os.WriteFile(path, []byte("old"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := RewriteFile(path, []byte("new")); err != nil {
		t.Fatalf("RewriteFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q", data)
	}
}

func TestRewriteFileMissing(t *testing.T) {
	if err := RewriteFile(filepath.Join(t.TempDir(), "absent.go"), nil); err == nil {
		t.Error("RewriteFile() should fail for a missing file")
	}
}
