package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"shelve/internal/faults"
	"shelve/internal/runlock"
)

func TestAcquireIsExclusivePerSource(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")
	source := t.TempDir()

	first, err := runlock.Acquire(lockDir, source)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	t.Cleanup(func() { _ = first.Release() })

	if _, err := runlock.Acquire(lockDir, source); !errors.Is(err, faults.ErrLocked) {
		t.Fatalf("expected ErrLocked for second acquire, got %v", err)
	}

	other, err := runlock.Acquire(lockDir, t.TempDir())
	if err != nil {
		t.Fatalf("expected independent lock for another source: %v", err)
	}
	if err := other.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := runlock.Acquire(lockDir, source)
	if err != nil {
		t.Fatalf("expected re-acquire after release: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestPathForIsStable(t *testing.T) {
	a := runlock.PathFor("/locks", "/data/inbox")
	b := runlock.PathFor("/locks", "/data/inbox/")
	if a != b {
		t.Fatalf("expected cleaned paths to share a lock: %q vs %q", a, b)
	}
	if filepath.Dir(a) != "/locks" || filepath.Ext(a) != ".lock" {
		t.Fatalf("unexpected lock path %q", a)
	}
}
