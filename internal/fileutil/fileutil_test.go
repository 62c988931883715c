package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(got)
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "verified copy content")

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, dst); got != "verified copy content" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestCopyFileVerifiedRefusesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	err := CopyFileVerified(src, dst)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	if got := readFile(t, dst); got != "old" {
		t.Fatalf("destination was modified: %q", got)
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "nonexistent"), filepath.Join(dir, "dst.bin")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMoveFileRenames(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "sub-a.txt")
	writeFile(t, src, "payload")

	copied, err := MoveFile(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if copied {
		t.Fatal("expected same-filesystem rename, not copy")
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected source gone, err=%v", err)
	}
	if got := readFile(t, dst); got != "payload" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestMoveFileNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	_, err := MoveFile(src, dst)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	if got := readFile(t, dst); got != "old" {
		t.Fatalf("destination overwritten: %q", got)
	}
	if got := readFile(t, src); got != "new" {
		t.Fatalf("source changed: %q", got)
	}
}

func TestSuffixedName(t *testing.T) {
	cases := []struct {
		name string
		n    int
		want string
	}{
		{"photo.jpg", 0, "photo.jpg"},
		{"photo.jpg", 1, "photo (1).jpg"},
		{"a.tar.gz", 2, "a.tar (2).gz"},
		{"README", 3, "README (3)"},
		{".bashrc", 1, ".bashrc (1)"},
	}
	for _, tc := range cases {
		if got := SuffixedName(tc.name, tc.n); got != tc.want {
			t.Fatalf("SuffixedName(%q, %d) = %q, want %q", tc.name, tc.n, got, tc.want)
		}
	}
}

func TestMoveFileUniqueAllocatesSuffix(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "Documents")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dest, "notes.txt"), "first")
	writeFile(t, filepath.Join(dest, "notes (1).txt"), "second")
	src := filepath.Join(dir, "notes.txt")
	writeFile(t, src, "third")

	final, _, err := MoveFileUnique(src, dest, "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dest, "notes (2).txt"); final != want {
		t.Fatalf("final path = %q, want %q", final, want)
	}
	if got := readFile(t, final); got != "third" {
		t.Fatalf("content mismatch: %q", got)
	}
}
