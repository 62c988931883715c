// Package runlock enforces one organize run per source directory at a time.
//
// Locks are advisory flock(2) locks on files under the state directory, keyed
// by a hash of the absolute source path, so they vanish with the process even
// after a crash.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"shelve/internal/faults"
)

// Lock is a held run lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file used for source under lockDir.
func PathFor(lockDir, source string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(source)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for source without blocking. It fails with
// faults.ErrLocked when another process holds it.
func Acquire(lockDir, source string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory %q: %w", lockDir, err)
	}
	path := PathFor(lockDir, source)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, faults.Wrap(faults.ErrLocked, "organize", "acquire lock",
			fmt.Sprintf("another shelve run is organizing %s", source), nil)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks and closes the lock file. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
