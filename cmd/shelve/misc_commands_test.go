package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategoriesCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"categories"}, env.configPath)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	requireContains(t, out, "built-in")
	requireContains(t, out, "4 categories plus Others")
	for _, name := range []string{"Documents", "Images", "Videos", "Music", "Others"} {
		requireContains(t, out, name)
	}
}

func TestCategoriesCommandUsesConfiguredTable(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, env.cfg, `
[[categories]]
name = "Code"
extensions = ["go", "rs"]

[[categories]]
name = "Docs"
extensions = ["md"]
`)

	out, _, err := runCLI(t, []string{"categories", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	var payload struct {
		Source     string `json:"source"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if payload.Source != "config" || len(payload.Categories) != 2 || payload.Categories[0].Name != "Code" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, []string{"check", src}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "== Readiness ==")
	requireContains(t, out, "[OK]")

	out, _, err = runCLI(t, []string{"check", filepath.Join(env.baseDir, "missing")}, env.configPath)
	if err == nil {
		t.Fatal("expected failed check for missing directory")
	}
	requireContains(t, out, "[ERROR]")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}

	// The sample must load cleanly.
	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, env.cfg, "\n[organize.extra]\nbogus = 1\n")
	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected unknown key to fail validation")
	}
}

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Source directory", statusError, "missing", false)
	if !strings.HasPrefix(got, statusIndent+"Source directory:") || !strings.HasSuffix(got, "[ERROR] missing") {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Source", statusOK, "ok", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, nil)
	if !strings.Contains(out, "only") || strings.Count(out, "\n") < 4 {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestLogsCommandShowsRunLines(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "inbox")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs"}, env.configPath)
	if err != nil {
		t.Fatalf("logs before any run: %v", err)
	}
	requireContains(t, out, "No log files yet")

	if _, _, err := runCLI(t, []string{src}, env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}
	out, _, err = runCLI(t, []string{"logs", "--lines", "10"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "organize completed")
}
