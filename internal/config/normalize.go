package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOrganize(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeCategories()
	return nil
}

// applyEnv lets SHELVE_* variables override file values.
func (c *Config) applyEnv() {
	if value, ok := lookupEnv("SHELVE_STATE_DIR"); ok {
		c.Paths.StateDir = value
	}
	if value, ok := lookupEnv("SHELVE_LOG_DIR"); ok {
		c.Paths.LogDir = value
	}
	if value, ok := lookupEnv("SHELVE_EXTENSIONS_FILE"); ok {
		c.Organize.ExtensionsFile = value
	}
	if value, ok := lookupEnv("SHELVE_LOG_LEVEL"); ok {
		c.Logging.Level = value
	}
	if value, ok := lookupEnv("SHELVE_LOG_FORMAT"); ok {
		c.Logging.Format = value
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, defaultLogDirName)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganize() error {
	c.Organize.Collision = strings.ToLower(strings.TrimSpace(c.Organize.Collision))
	if c.Organize.Collision == "" {
		c.Organize.Collision = defaultCollision
	}
	if c.Organize.Workers == 0 {
		c.Organize.Workers = defaultWorkers
	}
	c.Organize.ExtensionsFile = strings.TrimSpace(c.Organize.ExtensionsFile)
	if c.Organize.ExtensionsFile == "" {
		return nil
	}
	var err error
	if c.Organize.ExtensionsFile, err = expandPath(c.Organize.ExtensionsFile); err != nil {
		return fmt.Errorf("organize.extensions_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

// normalizeCategories trims names and extension entries. Case folding and dot
// stripping of extensions happen when the catalog table is built.
func (c *Config) normalizeCategories() {
	for i := range c.Categories {
		c.Categories[i].Name = strings.TrimSpace(c.Categories[i].Name)
		exts := c.Categories[i].Extensions[:0]
		for _, ext := range c.Categories[i].Extensions {
			if trimmed := strings.TrimSpace(ext); trimmed != "" {
				exts = append(exts, trimmed)
			}
		}
		c.Categories[i].Extensions = exts
	}
}
