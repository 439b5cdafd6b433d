// file: cmd/mkdir/mkdir.go

package mkdir

import (
	"fmt"
	"os"

	"github.com/barufa/nachos/pkg/disk"
	"github.com/barufa/nachos/pkg/nachosfs"
)

// MkdirOptions configures directory creation inside a disk image.
type MkdirOptions struct {
	Quiet bool // Suppress non-error output
}

// DefaultMkdirOptions returns default options for Mkdir.
func DefaultMkdirOptions() *MkdirOptions {
	return &MkdirOptions{Quiet: false}
}

// Mkdir creates directory path inside the disk image at diskPath. Its
// parent must already exist.
func Mkdir(diskPath, path string, opts *MkdirOptions) error {
	if opts == nil {
		opts = DefaultMkdirOptions()
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

	if err := fs.MakeDir(path); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	if !opts.Quiet {
		fmt.Printf("Created directory %s\n", path)
	}
	return nil
}
