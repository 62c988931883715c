//go:build linux

package fileutil

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// RenameNoReplace atomically renames src to dst and fails with EEXIST when
// dst already exists. Filesystems without RENAME_NOREPLACE support fall back
// to a hard link followed by unlinking src.
func RenameNoReplace(src, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EINVAL) && !errors.Is(err, unix.ENOSYS) {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: err}
	}
	return linkRename(src, dst)
}

func linkRename(src, dst string) error {
	if err := os.Link(src, dst); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && (errors.Is(linkErr.Err, unix.EPERM) || errors.Is(linkErr.Err, unix.ENOTSUP)) {
			return checkedRename(src, dst)
		}
		return err
	}
	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}
