package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelve/internal/config"
	"shelve/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	workDir    string
}

// setupCLITestEnv isolates HOME and the working directory so no user config,
// extensions.json, or .env leaks into a test.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)

	homeDir := filepath.Join(base, "home")
	workDir := filepath.Join(base, "work")
	for _, dir := range []string{homeDir, workDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_DATA_HOME", "")
	for _, key := range []string{"SHELVE_STATE_DIR", "SHELVE_LOG_DIR", "SHELVE_EXTENSIONS_FILE", "SHELVE_LOG_LEVEL", "SHELVE_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Chdir(workDir)

	configPath := filepath.Join(base, "shelve.toml")
	writeTestConfig(t, configPath, cfg, "")

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		workDir:    workDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestConfig writes the paths of cfg plus any extra TOML to path.
func writeTestConfig(t *testing.T, path string, cfg *config.Config, extra string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstate_dir = %q\nlog_dir = %q\n\n[organize]\nextensions_file = %q\n\n[history]\nenabled = %t\n%s",
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		cfg.Organize.ExtensionsFile,
		cfg.History.Enabled,
		extra,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireTree(t *testing.T, root string, want ...string) {
	t.Helper()
	got := testsupport.ListTree(t, root)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected tree under %s\n got: %v\nwant: %v", root, got, want)
	}
}
