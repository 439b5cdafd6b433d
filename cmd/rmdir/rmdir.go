// file: cmd/rmdir/rmdir.go

package rmdir

import (
	"fmt"
	"os"

	"github.com/barufa/nachos/pkg/disk"
	"github.com/barufa/nachos/pkg/nachosfs"
)

// RmdirOptions configures directory removal inside a disk image.
type RmdirOptions struct {
	Quiet bool // Suppress non-error output
}

// DefaultRmdirOptions returns default options for Rmdir.
func DefaultRmdirOptions() *RmdirOptions {
	return &RmdirOptions{Quiet: false}
}

// Rmdir recursively removes directory path and everything reachable from
// it, freeing every header and data sector involved.
func Rmdir(diskPath, path string, opts *RmdirOptions) error {
	if opts == nil {
		opts = DefaultRmdirOptions()
	}

	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return fmt.Errorf("disk image does not exist: %w", err)
	}

	d, err := disk.OpenFileDisk(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}
	defer d.Close()

	fs, err := nachosfs.NewFileSystem(d, false)
	if err != nil {
		return fmt.Errorf("failed to mount disk: %w", err)
	}

	ok, err := fs.RemoveDir(path)
	if err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("directory not found: %s", path)
	}

	if !opts.Quiet {
		fmt.Printf("Removed directory %s\n", path)
	}
	return nil
}
