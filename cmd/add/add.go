// file: cmd/add/add.go

package add

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/barufa/nachos/pkg/disk"
	"github.com/barufa/nachos/pkg/nachosfs"
)

// AddOptions configures copying a host file into a disk image.
type AddOptions struct {
	Force bool // Overwrite an existing destination file
	Quiet bool // Suppress non-error output
}

// DefaultAddOptions returns default options for Add.
func DefaultAddOptions() *AddOptions {
	return &AddOptions{Force: false, Quiet: false}
}

// Add copies the host file at filePath into the disk image at diskPath
// under destPath, creating destPath with the host file's size.
func Add(diskPath, filePath, destPath string, opts *AddOptions) error {
	if opts == nil {
		opts = DefaultAddOptions()
	}
	if destPath == "" {
		destPath = "/" + filepath.Base(filePath)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("input file does not exist: %w", err)
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

	if opts.Force {
		fs.Remove(destPath)
	}

	if err := fs.Create(destPath, int(info.Size())); err != nil {
		if errors.Is(err, nachosfs.ErrFileExists) {
			return fmt.Errorf("file already exists: %s (use force to overwrite)", destPath)
		}
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	src, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer src.Close()

	dst, err := fs.Open(destPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", destPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst.IO(), src); err != nil {
		return fmt.Errorf("failed to copy %s into disk: %w", filePath, err)
	}

	if !opts.Quiet {
		fmt.Printf("Added %s as %s\n", filepath.Base(filePath), destPath)
	}

	return nil
}
