//go:build windows

package report

import (
	"os"
	"path/filepath"
)

// atomicWriteFile writes data with a write-then-rename pattern,
// since renameio does not support Windows. Rename is atomic on the
// same volume, which holds for a temp file beside the target.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
