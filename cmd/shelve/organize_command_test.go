package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shelve/internal/faults"
	"shelve/internal/runlock"
	"shelve/internal/testsupport"
)

func TestOrganizeCommandFlat(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "notes.txt", "photo.jpg", "archive.zip", "sub/kept.pdf")

	out, _, err := runCLI(t, []string{src}, env.configPath)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Files organized in '"+src+"'.")
	requireContains(t, out, "Moved: 3  Skipped: 0  Failed: 0")
	requireTree(t, src, "Documents/notes.txt", "Images/photo.jpg", "Others/archive.zip", "sub/kept.pdf")
}

func TestOrganizeCommandRecursive(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "a.mp3", "sub/a.jpg")

	out, _, err := runCLI(t, []string{"--recursive", src}, env.configPath)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Files organized recursively in '"+src+"'.")
	requireTree(t, src, "Music/a.mp3", "sub/Images/a.jpg")

	out, _, err = runCLI(t, []string{"-r", src}, env.configPath)
	if err != nil {
		t.Fatalf("second organize: %v", err)
	}
	requireContains(t, out, "Moved: 0")
	requireTree(t, src, "Music/a.mp3", "sub/Images/a.jpg")
}

func TestOrganizeCommandInvalidSource(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "missing")

	_, _, err := runCLI(t, []string{missing}, env.configPath)
	if !errors.Is(err, faults.ErrInvalidSource) {
		t.Fatalf("expected ErrInvalidSource, got %v", err)
	}
	requireContains(t, err.Error(), "is not a valid directory")
	if code := faults.ExitCode(err); code != faults.ExitFatal {
		t.Fatalf("expected exit code %d, got %d", faults.ExitFatal, code)
	}
	for _, path := range []string{env.cfg.HistoryPath(), env.cfg.Paths.StateDir, env.cfg.Paths.LogDir} {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Fatalf("expected %s to be absent after invalid source, got %v", path, statErr)
		}
	}
}

func TestOrganizeCommandPartialFailureExitCode(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "a.pdf", "b.jpg", "Documents/a.pdf")

	out, _, err := runCLI(t, []string{src}, env.configPath)
	if err == nil {
		t.Fatal("expected per-file failure error")
	}
	if !errors.Is(err, faults.ErrCollision) {
		t.Fatalf("expected collision, got %v", err)
	}
	if code := faults.ExitCode(err); code != faults.ExitPartial {
		t.Fatalf("expected exit code %d, got %d", faults.ExitPartial, code)
	}
	requireContains(t, out, "Moved: 1  Skipped: 0  Failed: 1")
	requireTree(t, src, "Documents/a.pdf", "Images/b.jpg", "a.pdf")

	if _, _, err := runCLI(t, []string{"--collision", "suffix", src}, env.configPath); err != nil {
		t.Fatalf("organize with suffix: %v", err)
	}
	requireTree(t, src, "Documents/a (1).pdf", "Documents/a.pdf", "Images/b.jpg")
}

func TestOrganizeCommandDryRunJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "a.pdf", "b.flac")

	out, _, err := runCLI(t, []string{"--dry-run", "--json", src}, env.configPath)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	var view summaryView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if !view.DryRun || view.Planned != 2 || view.Moved != 0 {
		t.Fatalf("unexpected summary: %+v", view)
	}
	if len(view.Outcomes) != 2 || view.Outcomes[1].Target != filepath.Join(src, "Music", "b.flac") {
		t.Fatalf("unexpected outcomes: %+v", view.Outcomes)
	}
	requireTree(t, src, "a.pdf", "b.flac")
}

func TestOrganizeCommandExtensionsFile(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "novel.epub", "paper.pdf")

	table := filepath.Join(env.baseDir, "custom.json")
	if err := os.WriteFile(table, []byte(`{"Books": ["EPUB", ".pdf"]}`), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	if _, _, err := runCLI(t, []string{"--extensions", table, src}, env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireTree(t, src, "Books/novel.epub", "Books/paper.pdf")
}

func TestOrganizeCommandMissingExtensionsFileAbortsBeforeMoving(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "a.pdf")

	_, _, err := runCLI(t, []string{"--extensions", filepath.Join(env.baseDir, "nope.json"), src}, env.configPath)
	if !errors.Is(err, faults.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
	if faults.ExitCode(err) != faults.ExitFatal {
		t.Fatalf("expected fatal exit code for %v", err)
	}
	requireTree(t, src, "a.pdf")
}

func TestOrganizeCommandMalformedExtensionsFile(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "a.pdf")
	if err := os.WriteFile(env.cfg.Organize.ExtensionsFile, []byte(`{"Docs": [`), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	_, _, err := runCLI(t, []string{src}, env.configPath)
	if !errors.Is(err, faults.ErrConfigParse) {
		t.Fatalf("expected ErrConfigParse, got %v", err)
	}
	requireTree(t, src, "a.pdf")
}

func TestOrganizeCommandRespectsRunLock(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "a.pdf")

	lock, err := runlock.Acquire(env.cfg.LockDir(), src)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lock.Release()

	_, _, err = runCLI(t, []string{src}, env.configPath)
	if !errors.Is(err, faults.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	requireTree(t, src, "a.pdf")

	if _, _, err := runCLI(t, []string{"--dry-run", src}, env.configPath); err != nil {
		t.Fatalf("dry run should not need the lock: %v", err)
	}
}

func TestOrganizeCommandRejectsBadFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "a.pdf")

	if _, _, err := runCLI(t, []string{"--collision", "overwrite", src}, env.configPath); err == nil {
		t.Fatal("expected error for unknown collision policy")
	}
	if _, _, err := runCLI(t, []string{"--workers", "0", src}, env.configPath); err == nil {
		t.Fatal("expected error for zero workers")
	}
	requireTree(t, src, "a.pdf")
}

func TestOrganizeCommandMissingConfigFile(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	testsupport.Touch(t, src, "a.pdf")

	_, _, err := runCLI(t, []string{src}, filepath.Join(env.baseDir, "absent.toml"))
	if !errors.Is(err, faults.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
	requireTree(t, src, "a.pdf")
}
