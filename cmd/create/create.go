// file: cmd/create/create.go

package create

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/barufa/nachos/pkg/disk"
	"github.com/barufa/nachos/pkg/nachosfs"
)

// CreateOptions configures disk image creation.
type CreateOptions struct {
	Force bool // Overwrite an existing file at outPath
	Quiet bool // Suppress non-error output
}

// DefaultCreateOptions returns default options for Create.
func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{
		Force: false,
		Quiet: false,
	}
}

// Create formats a new disk image at outPath: disk.NumSectors sectors of
// disk.SectorSize bytes each, with an empty root directory and free-map
// already written back.
func Create(outPath string, opts *CreateOptions) error {
	if opts == nil {
		opts = DefaultCreateOptions()
	}

	outPath = filepath.Clean(outPath)

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("file already exists: %s (use force to overwrite)", outPath)
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	d, err := disk.CreateFileDisk(outPath)
	if err != nil {
		return fmt.Errorf("failed to create disk image: %w", err)
	}
	defer d.Close()

	if _, err := nachosfs.NewFileSystem(d, true); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to format disk image: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Created disk image: %s (%d sectors x %d bytes)\n", outPath, disk.NumSectors, disk.SectorSize)
	}
	return nil
}
