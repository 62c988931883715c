package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"shelve/internal/config"
	"shelve/internal/faults"
)

// Result captures the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// ValidateSource returns the cleaned absolute source path, or an
// faults.ErrInvalidSource error when it does not exist or is not a directory.
func ValidateSource(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", faults.Wrap(faults.ErrInvalidSource, "organize", "validate source", "no source directory given", nil)
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", faults.Wrap(faults.ErrInvalidSource, "organize", "validate source",
			fmt.Sprintf("cannot resolve %q", trimmed), err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", faults.Wrap(faults.ErrInvalidSource, "organize", "validate source",
				fmt.Sprintf("'%s' is not a valid directory", trimmed), nil)
		}
		return "", faults.Wrap(faults.ErrInvalidSource, "organize", "validate source",
			fmt.Sprintf("cannot stat '%s'", trimmed), err)
	}
	if !info.IsDir() {
		return "", faults.Wrap(faults.ErrInvalidSource, "organize", "validate source",
			fmt.Sprintf("'%s' is not a valid directory", trimmed), nil)
	}
	return abs, nil
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckExtensionsFile reports whether the configured extensions file exists.
// A missing optional file passes because the run falls back to another table.
func CheckExtensionsFile(path string, required bool) Result {
	const name = "Extensions file"
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Passed: !required, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	case err == nil:
		return Result{Name: name, Passed: true, Detail: path}
	case errors.Is(err, fs.ErrNotExist) && !required:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (absent; fallback table used)", path)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
}

// RunAll executes the readiness checks for organizing source with cfg.
func RunAll(cfg *config.Config, source string) []Result {
	results := []Result{CheckDirectoryAccess("Source directory", source)}
	if cfg == nil {
		return results
	}
	if cfg.History.Enabled {
		results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	}
	results = append(results, CheckExtensionsFile(cfg.Organize.ExtensionsFile, cfg.Organize.RequireExtensionsFile))
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
