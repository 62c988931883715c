package organizer

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"shelve/internal/faults"
	"shelve/internal/logging"
)

// Entry is a file discovered by the snapshot.
type Entry struct {
	Path string
	// Base is the directory that receives the category folder.
	Base string
	Name string
}

// snapshot lists every candidate file before anything is moved. Only regular
// files qualify; symlinks and special files are left alone.
func (o *Organizer) snapshot(ctx context.Context, logger *slog.Logger, root string) ([]Entry, error) {
	if !o.recursive {
		dirEntries, err := os.ReadDir(root)
		if err != nil {
			return nil, faults.Wrap(faults.ErrInvalidSource, "organize", "list source",
				"cannot read '"+root+"'", err)
		}
		entries := make([]Entry, 0, len(dirEntries))
		for _, d := range dirEntries {
			if !d.Type().IsRegular() {
				continue
			}
			entries = append(entries, Entry{Path: filepath.Join(root, d.Name()), Base: root, Name: d.Name()})
		}
		return entries, nil
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logging.WarnWithContext(logger, "directory not scanned", "scan_failed",
				logging.String("path", path),
				logging.Error(walkErr),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
				logging.String(logging.FieldImpact, "files below this directory were not organized"),
			)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && o.table.IsCategoryFolder(d.Name()) {
				logger.Debug("skipping organized folder", logging.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		entries = append(entries, Entry{Path: path, Base: filepath.Dir(path), Name: d.Name()})
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, faults.Wrap(faults.ErrInvalidSource, "organize", "walk source",
			"cannot read '"+root+"'", err)
	}
	return entries, nil
}
