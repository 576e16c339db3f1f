//go:build !windows

package report

import (
	"os"

	"github.com/google/renameio/v2"
)

// atomicWriteFile writes data atomically via renameio: the payload
// lands in a temp file in the destination directory and is renamed
// over the target, so a failed export never leaves a partial file.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
