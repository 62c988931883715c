package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	switch c.Organize.Collision {
	case CollisionFail, CollisionSuffix:
	default:
		return fmt.Errorf("organize.collision must be %q or %q, got %q", CollisionFail, CollisionSuffix, c.Organize.Collision)
	}
	if c.Organize.Workers < 1 || c.Organize.Workers > maxWorkers {
		return fmt.Errorf("organize.workers must be between 1 and %d", maxWorkers)
	}
	if c.Organize.RequireExtensionsFile && c.Organize.ExtensionsFile == "" {
		return errors.New("organize.extensions_file must be set when organize.require_extensions_file is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateCategories() error {
	seen := make(map[string]struct{}, len(c.Categories))
	for i, category := range c.Categories {
		name := category.Name
		if name == "" {
			return fmt.Errorf("categories[%d].name must be set", i)
		}
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("categories[%d].name %q is not a valid folder name", i, name)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("categories[%d].name %q is defined more than once", i, name)
		}
		seen[key] = struct{}{}
		if len(category.Extensions) == 0 {
			return fmt.Errorf("categories[%d].extensions must list at least one extension", i)
		}
	}
	return nil
}
