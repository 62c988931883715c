package catalog

import (
	"errors"
	"strings"

	"shelve/internal/config"
	"shelve/internal/faults"
)

// Source identifies where a resolved table came from.
type Source string

const (
	SourceFile    Source = "file"
	SourceConfig  Source = "config"
	SourceBuiltin Source = "builtin"
)

// ResolveOptions selects the table for a run.
type ResolveOptions struct {
	// Path is an explicitly requested extensions file; it must exist.
	Path string
	// FallbackPath is consulted when Path is empty, typically extensions.json
	// in the working directory. A missing fallback is skipped unless
	// RequireFallback is set.
	FallbackPath    string
	RequireFallback bool
	// Configured holds the [[categories]] section of the TOML config.
	Configured []config.Category
}

// Resolution is the table chosen for a run plus where it came from.
type Resolution struct {
	Table  *Table
	Source Source
	Origin string
}

// Resolve picks the category table: explicit file, fallback file, configured
// categories, then the built-in table.
func Resolve(opts ResolveOptions) (Resolution, error) {
	if path := strings.TrimSpace(opts.Path); path != "" {
		table, err := Load(path)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Table: table, Source: SourceFile, Origin: path}, nil
	}

	if path := strings.TrimSpace(opts.FallbackPath); path != "" {
		table, err := Load(path)
		switch {
		case err == nil:
			return Resolution{Table: table, Source: SourceFile, Origin: path}, nil
		case errors.Is(err, faults.ErrConfigNotFound) && !opts.RequireFallback:
		default:
			return Resolution{}, err
		}
	} else if opts.RequireFallback {
		return Resolution{}, faults.Wrap(faults.ErrConfigNotFound, stageConfig, "resolve extensions",
			"an extensions file is required but none was configured", nil)
	}

	if len(opts.Configured) > 0 {
		table, err := FromConfig(opts.Configured)
		if err != nil {
			return Resolution{}, faults.Wrap(faults.ErrConfigParse, stageConfig, "build categories",
				"invalid [[categories]] section", err)
		}
		return Resolution{Table: table, Source: SourceConfig, Origin: "[[categories]]"}, nil
	}

	return Resolution{Table: Default(), Source: SourceBuiltin, Origin: "built-in"}, nil
}
