// Package fileutil provides the filesystem primitives used to relocate files:
// no-clobber renames, verified cross-device copies, and collision-free name
// allocation.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// CopyFileVerified streams src to a new file at dst with SHA256 + size
// integrity verification. dst must not exist; it is removed on mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	_ = os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
	return nil
}

// MoveFile relocates src to dst without ever replacing an existing dst. When
// dst exists the returned error satisfies errors.Is(err, os.ErrExist). Moves
// across filesystems fall back to a verified copy followed by removal of src;
// copied reports whether that path was taken.
func MoveFile(src, dst string) (copied bool, err error) {
	renameErr := RenameNoReplace(src, dst)
	if renameErr == nil {
		return false, nil
	}
	if !errors.Is(renameErr, syscall.EXDEV) {
		return false, renameErr
	}

	if err := CopyFileVerified(src, dst); err != nil {
		return false, fmt.Errorf("cross-device copy: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return true, fmt.Errorf("remove source after copy: %w", err)
	}
	return true, nil
}

// SuffixedName inserts " (n)" before the extension of name. n <= 0 returns
// name unchanged.
func SuffixedName(name string, n int) string {
	if n <= 0 {
		return name
	}
	stem, ext := name, ""
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		stem, ext = name[:idx], name[idx:]
	}
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// MaxSuffixAttempts bounds MoveFileUnique.
const MaxSuffixAttempts = 10000

// MoveFileUnique moves src into dir under name, or under the first free
// "name (N).ext" when name is taken. It returns the final path.
func MoveFileUnique(src, dir, name string) (string, bool, error) {
	for attempt := 0; attempt <= MaxSuffixAttempts; attempt++ {
		candidate := filepath.Join(dir, SuffixedName(name, attempt))
		copied, err := MoveFile(src, candidate)
		if err == nil {
			return candidate, copied, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", copied, err
		}
	}
	return "", false, fmt.Errorf("exhausted %d name slots for %s in %s", MaxSuffixAttempts, name, dir)
}
