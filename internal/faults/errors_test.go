package faults_test

import (
	"errors"
	"strings"
	"testing"

	"shelve/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrFileMove, "organize", "rename", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, faults.ErrFileMove) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"organize", "rename", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := faults.Wrap(faults.ErrInvalidSource, "organize", "", "not a directory", nil)
	if !errors.Is(err, faults.ErrInvalidSource) {
		t.Fatalf("expected invalid source marker, got %v", err)
	}
	if got := err.Error(); got != "invalid source directory: organize: not a directory" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, faults.ExitOK},
		{faults.Wrap(faults.ErrConfigParse, "config", "decode", "bad json", nil), faults.ExitFatal},
		{faults.Wrap(faults.ErrLocked, "lock", "", "busy", nil), faults.ExitFatal},
		{faults.Wrap(faults.ErrCollision, "organize", "move", "exists", nil), faults.ExitPartial},
		{errors.New("plain"), faults.ExitFatal},
	}
	for _, tc := range cases {
		if got := faults.ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestKindLabels(t *testing.T) {
	if got := faults.Kind(faults.Wrap(faults.ErrCollision, "", "", "", nil)); got != "collision" {
		t.Fatalf("unexpected kind %q", got)
	}
	if got := faults.Kind(faults.Wrap(faults.ErrDirectoryCreate, "", "", "", errors.New("eperm"))); got != "directory_create" {
		t.Fatalf("unexpected kind %q", got)
	}
	if got := faults.Kind(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %q", got)
	}
}
