package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireRunLock(t *testing.T) {
	dir := t.TempDir()

	unlock, err := AcquireRunLock(dir)
	if err != nil {
		t.Fatalf("first AcquireRunLock should succeed: %v", err)
	}

	_, err = AcquireRunLock(dir)
	if err == nil {
		t.Fatal("second AcquireRunLock should fail while first lock is held")
	}
	if !IsLockHeld(err) {
		t.Errorf("error should indicate lock is held, got: %v", err)
	}

	unlock()

	unlock2, err := AcquireRunLock(dir)
	if err != nil {
		t.Fatalf("AcquireRunLock after release should succeed: %v", err)
	}
	unlock2()
}

func TestAcquireRunLockCleansUpStaleLock(t *testing.T) {
	dir := t.TempDir()

	lockPath := lockFilePath(dir)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(lockPath, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	unlock, err := AcquireRunLock(dir)
	if err != nil {
		t.Fatalf("AcquireRunLock should succeed on stale lock file: %v", err)
	}
	unlock()
}
