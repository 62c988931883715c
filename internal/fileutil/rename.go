package fileutil

import (
	"errors"
	"io/fs"
	"os"
)

// checkedRename is the portable fallback: stat the destination, then rename.
// It narrows but cannot close the window between the check and the rename.
func checkedRename(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}
