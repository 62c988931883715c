package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"shelve/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	for _, key := range []string{"SHELVE_STATE_DIR", "SHELVE_LOG_DIR", "SHELVE_EXTENSIONS_FILE", "SHELVE_LOG_LEVEL", "SHELVE_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(home, ".local", "share", "shelve")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.LogDir != filepath.Join(wantState, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Organize.Collision != config.CollisionFail {
		t.Fatalf("expected fail collision policy by default, got %q", cfg.Organize.Collision)
	}
	if cfg.Organize.Workers != 1 {
		t.Fatalf("expected single worker by default, got %d", cfg.Organize.Workers)
	}
	if !filepath.IsAbs(cfg.Organize.ExtensionsFile) || filepath.Base(cfg.Organize.ExtensionsFile) != "extensions.json" {
		t.Fatalf("expected absolute extensions.json path, got %q", cfg.Organize.ExtensionsFile)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if len(cfg.Categories) != 0 {
		t.Fatalf("expected no configured categories, got %d", len(cfg.Categories))
	}
	if cfg.HistoryPath() != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path %q", cfg.HistoryPath())
	}
}

func TestLoadCustomConfigPreservesCategoryOrder(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
state_dir = "` + filepath.ToSlash(filepath.Join(dir, "state")) + `"

[organize]
collision = "SUFFIX"
workers = 4

[logging]
format = "JSON"
level = "Debug"

[[categories]]
name = " Texts "
extensions = ["txt", " md ", ""]

[[categories]]
name = "Pictures"
extensions = ["jpg"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Organize.Collision != config.CollisionSuffix || cfg.Organize.Workers != 4 {
		t.Fatalf("unexpected organize section: %+v", cfg.Organize)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
	if len(cfg.Categories) != 2 {
		t.Fatalf("expected two categories, got %d", len(cfg.Categories))
	}
	if cfg.Categories[0].Name != "Texts" || cfg.Categories[1].Name != "Pictures" {
		t.Fatalf("category order not preserved: %+v", cfg.Categories)
	}
	if got := strings.Join(cfg.Categories[0].Extensions, ","); got != "txt,md" {
		t.Fatalf("expected trimmed extensions, got %q", got)
	}
	if cfg.Paths.LogDir != filepath.Join(dir, "state", "logs") {
		t.Fatalf("expected log dir under state dir, got %q", cfg.Paths.LogDir)
	}
}

func TestEnvOverridesFileValues(t *testing.T) {
	isolateEnv(t)
	state := t.TempDir()
	t.Setenv("SHELVE_STATE_DIR", state)
	t.Setenv("SHELVE_LOG_LEVEL", "warn")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.StateDir != state {
		t.Fatalf("expected env state dir, got %q", cfg.Paths.StateDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"collision": func(c *config.Config) { c.Organize.Collision = "overwrite" },
		"workers":   func(c *config.Config) { c.Organize.Workers = 0 },
		"format":    func(c *config.Config) { c.Logging.Format = "xml" },
		"empty category": func(c *config.Config) {
			c.Categories = []config.Category{{Name: "", Extensions: []string{"txt"}}}
		},
		"slash in name": func(c *config.Config) {
			c.Categories = []config.Category{{Name: "a/b", Extensions: []string{"txt"}}}
		},
		"duplicate name": func(c *config.Config) {
			c.Categories = []config.Category{
				{Name: "Docs", Extensions: []string{"txt"}},
				{Name: "docs", Extensions: []string{"md"}},
			}
		},
		"no extensions": func(c *config.Config) {
			c.Categories = []config.Category{{Name: "Docs"}}
		},
	}
	for name, mutate := range cases {
		cfg := config.Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[organize]\nrecursiv = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("Load(sample): %v", err)
	}
}
