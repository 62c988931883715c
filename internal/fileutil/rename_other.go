//go:build !linux

package fileutil

// RenameNoReplace renames src to dst and fails with an os.ErrExist error when
// dst already exists.
func RenameNoReplace(src, dst string) error {
	return checkedRename(src, dst)
}
