package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"shelve/internal/config"
	"shelve/internal/faults"
	"shelve/internal/fileutil"
)

// place moves one entry into its category folder.
func (o *Organizer) place(e Entry, category string) Outcome {
	dir := filepath.Join(e.Base, category)
	outcome := Outcome{Source: e.Path, Category: category}

	if o.dryRun {
		return o.preview(outcome, dir, e.Name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return failed(outcome, faults.Wrap(faults.ErrDirectoryCreate, "organize", "create folder",
			fmt.Sprintf("cannot create '%s' for %s", dir, e.Name), err))
	}

	var (
		target string
		copied bool
		err    error
	)
	if o.collision == config.CollisionSuffix {
		target, copied, err = fileutil.MoveFileUnique(e.Path, dir, e.Name)
	} else {
		target = filepath.Join(dir, e.Name)
		copied, err = fileutil.MoveFile(e.Path, target)
	}
	outcome.Copied = copied
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return failed(outcome, faults.Wrap(faults.ErrCollision, "organize", "move file",
				fmt.Sprintf("'%s' already exists in %s", e.Name, dir), nil))
		}
		return failed(outcome, faults.Wrap(faults.ErrFileMove, "organize", "move file",
			fmt.Sprintf("cannot move %s to %s", e.Path, dir), err))
	}
	outcome.Target = target
	outcome.Status = StatusMoved
	return outcome
}

// preview computes the destination a real run would pick, including
// predictable collisions, without creating anything.
func (o *Organizer) preview(outcome Outcome, dir, name string) Outcome {
	target := filepath.Join(dir, name)
	if !exists(target) {
		outcome.Target = target
		outcome.Status = StatusPlanned
		return outcome
	}
	if o.collision != config.CollisionSuffix {
		return failed(outcome, faults.Wrap(faults.ErrCollision, "organize", "plan move",
			fmt.Sprintf("'%s' already exists in %s", name, dir), nil))
	}
	for n := 1; n <= fileutil.MaxSuffixAttempts; n++ {
		candidate := filepath.Join(dir, fileutil.SuffixedName(name, n))
		if !exists(candidate) {
			outcome.Target = candidate
			outcome.Status = StatusPlanned
			return outcome
		}
	}
	return failed(outcome, faults.Wrap(faults.ErrCollision, "organize", "plan move",
		fmt.Sprintf("no free name for '%s' in %s", name, dir), nil))
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func failed(outcome Outcome, err error) Outcome {
	outcome.Status = StatusFailed
	outcome.Err = err
	return outcome
}
